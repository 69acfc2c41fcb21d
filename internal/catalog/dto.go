package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
)

// ProductDTO is the API shape of a catalog product.
type ProductDTO struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	Category     string       `json:"category"`
	SellingPrice float64      `json:"selling_price"`
	CostPrice    float64      `json:"cost_price"`
	Images       []string     `json:"images"`
	Fullstock    bool         `json:"fullstock"`
	IsActive     bool         `json:"is_active"`
	ColorGroups  []ColorGroup `json:"color_groups"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProductListResult carries one page of products plus the next cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// VariantInput is one (size, color, stock) row in a create/update payload.
type VariantInput struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title        string
	Description  *string
	Category     string
	SellingPrice float64
	CostPrice    float64
	Images       []string
	Fullstock    bool
	IsActive     bool
	Variants     []VariantInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Title        *string
	Description  *string
	Category     *string
	SellingPrice *float64
	CostPrice    *float64
	Images       *[]string
	Fullstock    *bool
	IsActive     *bool
	Variants     *[]VariantInput
}

// ToDTO converts a model row, computing the color groups for pickers.
func ToDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		SellingPrice: p.SellingPrice,
		CostPrice:    p.CostPrice,
		Images:       []string(p.Images),
		Fullstock:    p.Fullstock,
		IsActive:     p.IsActive,
		ColorGroups:  GroupByColor(p.Variants),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
