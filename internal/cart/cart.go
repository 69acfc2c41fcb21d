package cart

import (
	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
)

// Key identifies a cart line. Two lines with the same product but different
// size or color are distinct.
type Key struct {
	ProductID uuid.UUID
	Size      string
	Color     string
}

// Item is one line of a cart: a product snapshot, the chosen variant, and a
// positive quantity.
type Item struct {
	Product  models.Product
	Variant  models.ProductVariant
	Quantity int
}

// ItemKey derives the identity key for an item, defaulting the color.
func ItemKey(item Item) Key {
	return NewKey(item.Product.ID, item.Variant.Size, item.Variant.Color)
}

// NewKey builds a cart key, defaulting an empty color.
func NewKey(productID uuid.UUID, size, color string) Key {
	if color == "" {
		color = models.DefaultColor
	}
	return Key{ProductID: productID, Size: size, Color: color}
}

// Store holds the cart lines for one session. It is not safe for concurrent
// use; Manager serializes access per user.
type Store struct {
	lines []Item
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add merges the item into an existing line with the same key, or appends a
// new line at the end. Existing line order is preserved.
func (s *Store) Add(item Item) {
	if item.Quantity <= 0 {
		return
	}
	key := ItemKey(item)
	for i := range s.lines {
		if ItemKey(s.lines[i]) == key {
			s.lines[i].Quantity += item.Quantity
			return
		}
	}
	if item.Variant.Color == "" {
		item.Variant.Color = models.DefaultColor
	}
	s.lines = append(s.lines, item)
}

// Remove drops the line with the given key. Absent keys are a no-op.
func (s *Store) Remove(key Key) {
	for i := range s.lines {
		if ItemKey(s.lines[i]) == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the matching line's quantity. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(key Key, quantity int) {
	if quantity <= 0 {
		s.Remove(key)
		return
	}
	for i := range s.lines {
		if ItemKey(s.lines[i]) == key {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties all lines.
func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Item {
	out := make([]Item, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalAmount is the sum of selling price times quantity across all lines.
func (s *Store) TotalAmount() float64 {
	total := 0.0
	for _, line := range s.lines {
		total += line.Product.SellingPrice * float64(line.Quantity)
	}
	return total
}

// TotalCost is the sum of cost price times quantity across all lines.
func (s *Store) TotalCost() float64 {
	total := 0.0
	for _, line := range s.lines {
		total += line.Product.CostPrice * float64(line.Quantity)
	}
	return total
}

// TotalProfit is TotalAmount minus TotalCost.
func (s *Store) TotalProfit() float64 {
	return s.TotalAmount() - s.TotalCost()
}
