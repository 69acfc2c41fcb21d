package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColor is assumed when a variant does not specify one.
const DefaultColor = "Default"

// ProductVariant is one (size, color) combination of a product with its own
// stock count. (product_id, size, color) is unique.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_product_variants_key,priority:1"`
	Size      string    `gorm:"column:size;not null;uniqueIndex:ux_product_variants_key,priority:2"`
	Color     string    `gorm:"column:color;not null;default:'Default';uniqueIndex:ux_product_variants_key,priority:3"`
	Stock     int       `gorm:"column:stock;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
