package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/internal/stock"
	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// SubmitInput carries the order submission request. The cart itself is read
// from the acting user's session cart.
type SubmitInput struct {
	ActorID    uuid.UUID
	CustomerID uuid.UUID
	WorkerID   *uuid.UUID
}

// SubmitResult is the structured outcome of a submission attempt. A stock
// shortfall is a result, not an error: the caller offers the recovery flow.
type SubmitResult struct {
	Success         bool                  `json:"success"`
	OrderID         *uuid.UUID            `json:"order_id,omitempty"`
	Message         string                `json:"message,omitempty"`
	OutOfStockItems []stock.ShortfallItem `json:"out_of_stock_items,omitempty"`
}

// LineItemDTO is the API shape of one order line.
type LineItemDTO struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Size          string    `json:"size"`
	Color         string    `json:"color"`
	Quantity      int       `json:"quantity"`
	CostPrice     float64   `json:"cost_price"`
	SellingPrice  float64   `json:"selling_price"`
	FinalPrice    float64   `json:"final_price"`
	DiscountGiven float64   `json:"discount_given"`
}

// OrderDTO is the API shape of an order.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	SalesmanID   uuid.UUID         `json:"salesman_id"`
	SalesmanName string            `json:"salesman_name"`
	WorkerID     *uuid.UUID        `json:"worker_id,omitempty"`
	WorkerName   *string           `json:"worker_name,omitempty"`
	Status       enums.OrderStatus `json:"status"`
	TotalAmount  float64           `json:"total_amount"`
	TotalCost    float64           `json:"total_cost"`
	TotalProfit  float64           `json:"total_profit"`
	Items        []LineItemDTO     `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// OrderListResult carries one page of orders plus the next cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// ToDTO converts an order row with its line items.
func ToDTO(order models.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemDTO{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Size:          item.Size,
			Color:         item.Color,
			Quantity:      item.Quantity,
			CostPrice:     item.CostPrice,
			SellingPrice:  item.SellingPrice,
			FinalPrice:    item.FinalPrice,
			DiscountGiven: item.DiscountGiven,
		})
	}
	return OrderDTO{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		SalesmanID:   order.SalesmanID,
		SalesmanName: order.SalesmanName,
		WorkerID:     order.WorkerID,
		WorkerName:   order.WorkerName,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		TotalCost:    order.TotalCost,
		TotalProfit:  order.TotalProfit,
		Items:        items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
