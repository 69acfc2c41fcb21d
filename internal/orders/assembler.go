package orders

import (
	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/internal/cart"
	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// Party identifies one participant attached to an order at assembly time.
type Party struct {
	ID   uuid.UUID
	Name string
}

// Assemble converts cart lines into an order row with denormalized names and
// totals. Totals use the same formulas as the cart aggregates so a submitted
// order always matches what the cart displayed. finalPrice mirrors
// sellingPrice and discountGiven stays zero; line-level discounting is a
// dormant extension point in the data shape.
func Assemble(lines []cart.Item, customer, salesman Party, worker *Party) models.Order {
	items := make([]models.OrderLineItem, 0, len(lines))
	totalAmount := 0.0
	totalCost := 0.0
	for _, line := range lines {
		color := line.Variant.Color
		if color == "" {
			color = models.DefaultColor
		}
		items = append(items, models.OrderLineItem{
			ProductID:     line.Product.ID,
			ProductName:   line.Product.Title,
			Size:          line.Variant.Size,
			Color:         color,
			Quantity:      line.Quantity,
			CostPrice:     line.Product.CostPrice,
			SellingPrice:  line.Product.SellingPrice,
			FinalPrice:    line.Product.SellingPrice,
			DiscountGiven: 0,
		})
		totalAmount += line.Product.SellingPrice * float64(line.Quantity)
		totalCost += line.Product.CostPrice * float64(line.Quantity)
	}

	order := models.Order{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		SalesmanID:   salesman.ID,
		SalesmanName: salesman.Name,
		Status:       enums.OrderStatusPending,
		TotalAmount:  totalAmount,
		TotalCost:    totalCost,
		TotalProfit:  totalAmount - totalCost,
		Items:        items,
	}
	if worker != nil {
		workerID := worker.ID
		workerName := worker.Name
		order.WorkerID = &workerID
		order.WorkerName = &workerName
	}
	return order
}
