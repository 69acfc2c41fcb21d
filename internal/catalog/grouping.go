package catalog

import (
	"sort"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
)

// SizeEntry is one selectable size within a color group.
type SizeEntry struct {
	Size    string                `json:"size"`
	Stock   int                   `json:"stock"`
	Variant models.ProductVariant `json:"variant"`
}

// ColorGroup collects a product's sizes for a single color, ordered by the
// domain size order.
type ColorGroup struct {
	Color string      `json:"color"`
	Sizes []SizeEntry `json:"sizes"`
}

// GroupByColor partitions variants by color and sorts each group's sizes by
// SizeRank. Groups are ordered by color, byte-wise. Variants with zero stock
// are retained; availability filtering is up to the caller.
func GroupByColor(variants []models.ProductVariant) []ColorGroup {
	if len(variants) == 0 {
		return []ColorGroup{}
	}

	grouped := make(map[string][]SizeEntry)
	colors := []string{}
	for _, v := range variants {
		color := v.Color
		if color == "" {
			color = models.DefaultColor
		}
		if _, seen := grouped[color]; !seen {
			colors = append(colors, color)
		}
		grouped[color] = append(grouped[color], SizeEntry{
			Size:    v.Size,
			Stock:   v.Stock,
			Variant: v,
		})
	}

	sort.Strings(colors)

	groups := make([]ColorGroup, 0, len(colors))
	for _, color := range colors {
		sizes := grouped[color]
		sort.SliceStable(sizes, func(i, j int) bool {
			return SizeRank(sizes[i].Size) < SizeRank(sizes[j].Size)
		})
		groups = append(groups, ColorGroup{Color: color, Sizes: sizes})
	}
	return groups
}
