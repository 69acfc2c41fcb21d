package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// OrderCreatedEvent is emitted once per successful cart submission.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	SalesmanID  uuid.UUID `json:"salesman_id"`
	ItemCount   int       `json:"item_count"`
	TotalAmount float64   `json:"total_amount"`
}

// OrderStatusChangedEvent is emitted on each fulfillment transition.
type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID         `json:"order_id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	SalesmanID uuid.UUID         `json:"salesman_id"`
	FromStatus enums.OrderStatus `json:"from_status"`
	ToStatus   enums.OrderStatus `json:"to_status"`
	ChangedAt  time.Time         `json:"changed_at"`
}
