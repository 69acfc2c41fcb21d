package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	"github.com/adithyanarayan/stockline-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  salesman_id TEXT NOT NULL,
  salesman_name TEXT NOT NULL,
  worker_id TEXT,
  worker_name TEXT,
  status TEXT NOT NULL,
  total_amount REAL NOT NULL,
  total_cost REAL NOT NULL,
  total_profit REAL NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  size TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT 'Default',
  quantity INTEGER NOT NULL,
  cost_price REAL NOT NULL,
  selling_price REAL NOT NULL,
  final_price REAL NOT NULL,
  discount_given REAL NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLineItems).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, customerID, salesmanID uuid.UUID, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CustomerName: "Ravi Traders",
		SalesmanID:   salesmanID,
		SalesmanName: "Kiran",
		Status:       status,
		TotalAmount:  200,
		TotalCost:    120,
		TotalProfit:  80,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderLineItem{
		ID:           uuid.New(),
		OrderID:      order.ID,
		ProductID:    uuid.New(),
		ProductName:  "Crew Neck Tee",
		Size:         "M",
		Color:        "Black",
		Quantity:     2,
		CostPrice:    60,
		SellingPrice: 100,
		FinalPrice:   100,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := &models.Order{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Ravi Traders",
		SalesmanID:   uuid.New(),
		SalesmanName: "Kiran",
		Status:       enums.OrderStatusPending,
		TotalAmount:  300,
		TotalCost:    180,
		TotalProfit:  120,
		Items: []models.OrderLineItem{
			{
				ID:           uuid.New(),
				ProductID:    uuid.New(),
				ProductName:  "Crew Neck Tee",
				Size:         "M",
				Color:        "Black",
				Quantity:     3,
				CostPrice:    60,
				SellingPrice: 100,
				FinalPrice:   100,
			},
		},
	}

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Traders", found.CustomerName)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Crew Neck Tee", found.Items[0].ProductName)
	assert.Equal(t, 3, found.Items[0].Quantity)
}

func TestRepositoryFindByID_missing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryList_filters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	salesman := uuid.New()
	otherSalesman := uuid.New()
	customer := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	createTestOrder(t, db, customer, salesman, enums.OrderStatusPending, base.Add(-3*time.Minute))
	createTestOrder(t, db, customer, salesman, enums.OrderStatusShipped, base.Add(-2*time.Minute))
	createTestOrder(t, db, uuid.New(), otherSalesman, enums.OrderStatusPending, base.Add(-1*time.Minute))

	bySalesman, err := repo.List(ctx, ListFilter{SalesmanID: &salesman}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, bySalesman, 2)

	shipped := enums.OrderStatusShipped
	byStatus, err := repo.List(ctx, ListFilter{SalesmanID: &salesman, Status: &shipped}, nil, 10)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, enums.OrderStatusShipped, byStatus[0].Status)

	byCustomer, err := repo.List(ctx, ListFilter{CustomerID: &customer}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)
}

func TestRepositoryList_cursorPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	salesman := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		createTestOrder(t, db, uuid.New(), salesman, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.List(ctx, ListFilter{SalesmanID: &salesman}, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, first[0].CreatedAt.After(first[1].CreatedAt))

	cursor := &pagination.Cursor{CreatedAt: first[1].CreatedAt, ID: first[1].ID}
	second, err := repo.List(ctx, ListFilter{SalesmanID: &salesman}, cursor, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.True(t, second[0].CreatedAt.Before(first[1].CreatedAt))

	seen := map[uuid.UUID]bool{}
	for _, order := range append(first, second...) {
		assert.False(t, seen[order.ID], "page overlap for %s", order.ID)
		seen[order.ID] = true
	}
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, uuid.New(), uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPacked))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPacked, found.Status)
}

func TestRepositoryWithTx(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	assert.Same(t, repo, repo.WithTx(nil))
	assert.NotSame(t, repo, repo.WithTx(db.Session(&gorm.Session{})))
}
