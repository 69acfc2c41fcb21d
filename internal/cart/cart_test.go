package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
)

func testProduct(selling, cost float64) models.Product {
	return models.Product{
		ID:           uuid.New(),
		Title:        "Crew Neck Tee",
		Category:     "tshirts",
		SellingPrice: selling,
		CostPrice:    cost,
		IsActive:     true,
	}
}

func testItem(product models.Product, size, color string, qty int) Item {
	return Item{
		Product: product,
		Variant: models.ProductVariant{
			ProductID: product.ID,
			Size:      size,
			Color:     color,
			Stock:     10,
		},
		Quantity: qty,
	}
}

func TestStoreAdd_MergesSameKey(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()

	store.Add(testItem(product, "M", "Black", 2))
	store.Add(testItem(product, "M", "Black", 3))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, store.TotalItems())
}

func TestStoreAdd_DistinctSizesAreDistinctLines(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()

	store.Add(testItem(product, "M", "Black", 2))
	store.Add(testItem(product, "L", "Black", 1))

	require.Len(t, store.Lines(), 2)
	assert.Equal(t, 3, store.TotalItems())
	assert.Equal(t, 300.0, store.TotalAmount())
}

func TestStoreAdd_IgnoresNonPositiveQuantity(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()

	store.Add(testItem(product, "M", "Black", 0))
	store.Add(testItem(product, "M", "Black", -4))

	assert.Empty(t, store.Lines())
}

func TestStoreAdd_DefaultsColor(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()

	store.Add(testItem(product, "M", "", 1))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, models.DefaultColor, lines[0].Variant.Color)

	// A later add with the explicit default color merges into the same line.
	store.Add(testItem(product, "M", models.DefaultColor, 2))
	lines = store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestStoreRemove_AbsentKeyIsNoOp(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()
	store.Add(testItem(product, "M", "Black", 2))

	store.Remove(NewKey(uuid.New(), "M", "Black"))
	store.Remove(NewKey(product.ID, "XL", "Black"))

	assert.Len(t, store.Lines(), 1)
}

func TestStoreUpdateQuantity(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()
	store.Add(testItem(product, "M", "Black", 2))

	key := NewKey(product.ID, "M", "Black")
	store.UpdateQuantity(key, 7)
	require.Len(t, store.Lines(), 1)
	assert.Equal(t, 7, store.Lines()[0].Quantity)

	store.UpdateQuantity(key, 0)
	assert.Empty(t, store.Lines())
}

func TestStoreTotals(t *testing.T) {
	tee := testProduct(100, 60)
	hoodie := testProduct(250, 150)
	store := NewStore()

	store.Add(testItem(tee, "M", "Black", 2))
	store.Add(testItem(hoodie, "L", "Navy", 1))

	assert.Equal(t, 3, store.TotalItems())
	assert.Equal(t, 450.0, store.TotalAmount())
	assert.Equal(t, 270.0, store.TotalCost())
	assert.Equal(t, store.TotalAmount()-store.TotalCost(), store.TotalProfit())
}

func TestStoreClear(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()
	store.Add(testItem(product, "M", "Black", 2))

	store.Clear()

	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.TotalItems())
	assert.Equal(t, 0.0, store.TotalAmount())
}

func TestStoreLines_ReturnsCopy(t *testing.T) {
	product := testProduct(100, 60)
	store := NewStore()
	store.Add(testItem(product, "M", "Black", 2))

	lines := store.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 2, store.Lines()[0].Quantity)
}
