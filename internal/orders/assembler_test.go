package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adithyanarayan/stockline-backend/internal/cart"
	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

func cartLine(title string, selling, cost float64, size, color string, qty int) cart.Item {
	return cart.Item{
		Product: models.Product{
			ID:           uuid.New(),
			Title:        title,
			SellingPrice: selling,
			CostPrice:    cost,
		},
		Variant: models.ProductVariant{
			Size:  size,
			Color: color,
		},
		Quantity: qty,
	}
}

func TestAssemble_TotalsMatchCartFormulas(t *testing.T) {
	lines := []cart.Item{
		cartLine("Crew Neck Tee", 100, 60, "M", "Black", 2),
		cartLine("Zip Hoodie", 250, 150, "L", "Navy", 1),
	}
	customer := Party{ID: uuid.New(), Name: "Ravi Traders"}
	salesman := Party{ID: uuid.New(), Name: "Kiran"}

	order := Assemble(lines, customer, salesman, nil)

	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, 270.0, order.TotalCost)
	assert.Equal(t, 180.0, order.TotalProfit)
	require.Len(t, order.Items, 2)
}

func TestAssemble_PendingStatusAndDenormalizedNames(t *testing.T) {
	customer := Party{ID: uuid.New(), Name: "Ravi Traders"}
	salesman := Party{ID: uuid.New(), Name: "Kiran"}

	order := Assemble([]cart.Item{cartLine("Crew Neck Tee", 100, 60, "M", "Black", 1)}, customer, salesman, nil)

	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "Ravi Traders", order.CustomerName)
	assert.Equal(t, salesman.ID, order.SalesmanID)
	assert.Equal(t, "Kiran", order.SalesmanName)
	assert.Nil(t, order.WorkerID)
	assert.Nil(t, order.WorkerName)
	assert.Equal(t, "Crew Neck Tee", order.Items[0].ProductName)
}

func TestAssemble_OptionalWorker(t *testing.T) {
	worker := Party{ID: uuid.New(), Name: "Suresh"}

	order := Assemble(
		[]cart.Item{cartLine("Crew Neck Tee", 100, 60, "M", "Black", 1)},
		Party{ID: uuid.New(), Name: "Ravi Traders"},
		Party{ID: uuid.New(), Name: "Kiran"},
		&worker,
	)

	require.NotNil(t, order.WorkerID)
	require.NotNil(t, order.WorkerName)
	assert.Equal(t, worker.ID, *order.WorkerID)
	assert.Equal(t, "Suresh", *order.WorkerName)
}

func TestAssemble_LinePricing(t *testing.T) {
	order := Assemble(
		[]cart.Item{cartLine("Crew Neck Tee", 100, 60, "M", "", 3)},
		Party{ID: uuid.New(), Name: "Ravi Traders"},
		Party{ID: uuid.New(), Name: "Kiran"},
		nil,
	)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, 100.0, item.SellingPrice)
	assert.Equal(t, 100.0, item.FinalPrice)
	assert.Equal(t, 0.0, item.DiscountGiven)
	assert.Equal(t, 60.0, item.CostPrice)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, models.DefaultColor, item.Color)
}

func TestAssemble_EmptyCart(t *testing.T) {
	order := Assemble(nil, Party{ID: uuid.New()}, Party{ID: uuid.New()}, nil)

	assert.Empty(t, order.Items)
	assert.Equal(t, 0.0, order.TotalAmount)
	assert.Equal(t, 0.0, order.TotalProfit)
}
