package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog listing. Prices are rupee amounts stored as
// doubles to match the document shapes the mobile clients already consume.
// Fullstock marks products whose stock is not tracked; their variants are
// always considered available.
type Product struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string           `gorm:"column:title;not null"`
	Description  *string          `gorm:"column:description"`
	Category     string           `gorm:"column:category;not null"`
	SellingPrice float64          `gorm:"column:selling_price;not null"`
	CostPrice    float64          `gorm:"column:cost_price;not null"`
	Images       pq.StringArray   `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Fullstock    bool             `gorm:"column:fullstock;not null;default:false"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	Variants     []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
