package stock

import (
	"context"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
)

// LowStockThreshold marks variants with stock at or below this count as
// running low. Fixed policy constant.
const LowStockThreshold = 3

// RequestedItem is one order line to validate against available stock.
type RequestedItem struct {
	ProductID   uuid.UUID
	ProductName string
	Size        string
	Color       string
	Quantity    int
	Fullstock   bool
}

// ShortfallItem reports one line whose requested quantity exceeds stock.
type ShortfallItem struct {
	ProductName       string `json:"product_name"`
	Size              string `json:"size"`
	Color             string `json:"color"`
	AvailableStock    int    `json:"available_stock"`
	RequestedQuantity int    `json:"requested_quantity"`
}

// Result is the outcome of a sufficiency check.
type Result struct {
	HasSufficientStock bool            `json:"has_sufficient_stock"`
	OutOfStockItems    []ShortfallItem `json:"out_of_stock_items"`
}

// Lookup resolves the current stock for a variant. The boolean is false when
// the variant does not exist, which counts as zero available.
type Lookup interface {
	VariantStock(ctx context.Context, productID uuid.UUID, size, color string) (int, bool, error)
}

// Guard runs best-effort sufficiency checks before order creation. The
// authoritative check is the guarded decrement inside the order transaction;
// this pre-check exists to give the caller a structured shortfall report
// before anything is written.
type Guard struct {
	lookup Lookup
}

// NewGuard constructs a stock guard over the provided lookup.
func NewGuard(lookup Lookup) *Guard {
	return &Guard{lookup: lookup}
}

// CheckSufficiency validates every requested item. Fullstock products are
// always sufficient regardless of recorded stock.
func (g *Guard) CheckSufficiency(ctx context.Context, items []RequestedItem) (*Result, error) {
	shortfalls := []ShortfallItem{}
	for _, item := range items {
		if item.Fullstock {
			continue
		}
		color := item.Color
		if color == "" {
			color = models.DefaultColor
		}
		available, found, err := g.lookup.VariantStock(ctx, item.ProductID, item.Size, color)
		if err != nil {
			return nil, err
		}
		if !found {
			available = 0
		}
		if available < item.Quantity {
			shortfalls = append(shortfalls, ShortfallItem{
				ProductName:       item.ProductName,
				Size:              item.Size,
				Color:             color,
				AvailableStock:    available,
				RequestedQuantity: item.Quantity,
			})
		}
	}
	return &Result{
		HasSufficientStock: len(shortfalls) == 0,
		OutOfStockItems:    shortfalls,
	}, nil
}

// IsInStock reports whether any variant is available. Fullstock products are
// always in stock.
func IsInStock(product models.Product) bool {
	return !IsOutOfStock(product)
}

// IsOutOfStock reports whether every variant has zero stock. Fullstock
// products are never out of stock.
func IsOutOfStock(product models.Product) bool {
	if product.Fullstock {
		return false
	}
	for _, v := range product.Variants {
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// HasLowStockVariant reports whether any variant sits in (0, threshold].
// Fullstock products are never low.
func HasLowStockVariant(product models.Product) bool {
	if product.Fullstock {
		return false
	}
	for _, v := range product.Variants {
		if v.Stock > 0 && v.Stock <= LowStockThreshold {
			return true
		}
	}
	return false
}
