package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem is one (product, size, color) line of an order. FinalPrice
// equals SellingPrice and DiscountGiven is zero for client-created orders;
// both fields exist so line-level discounting can be introduced without a
// document migration.
type OrderLineItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName   string    `gorm:"column:product_name;not null"`
	Size          string    `gorm:"column:size;not null"`
	Color         string    `gorm:"column:color;not null;default:'Default'"`
	Quantity      int       `gorm:"column:quantity;not null"`
	CostPrice     float64   `gorm:"column:cost_price;not null"`
	SellingPrice  float64   `gorm:"column:selling_price;not null"`
	FinalPrice    float64   `gorm:"column:final_price;not null"`
	DiscountGiven float64   `gorm:"column:discount_given;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
