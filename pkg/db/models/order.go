package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// Order is a submitted customer order. Names are denormalized at creation
// time so the row stays readable after directory changes.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	SalesmanID   uuid.UUID         `gorm:"column:salesman_id;type:uuid;not null"`
	SalesmanName string            `gorm:"column:salesman_name;not null"`
	WorkerID     *uuid.UUID        `gorm:"column:worker_id;type:uuid"`
	WorkerName   *string           `gorm:"column:worker_name"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null"`
	TotalAmount  float64           `gorm:"column:total_amount;not null"`
	TotalCost    float64           `gorm:"column:total_cost;not null"`
	TotalProfit  float64           `gorm:"column:total_profit;not null"`
	Items        []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
