package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/internal/cart"
	"github.com/adithyanarayan/stockline-backend/internal/catalog"
	"github.com/adithyanarayan/stockline-backend/internal/stock"
	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
	"github.com/adithyanarayan/stockline-backend/pkg/outbox"
	"github.com/adithyanarayan/stockline-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrdersRepo struct {
	orders        map[uuid.UUID]*models.Order
	created       []*models.Order
	listResult    []models.Order
	listFilter    ListFilter
	listLimit     int
	statusUpdates map[uuid.UUID]enums.OrderStatus
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{
		orders:        map[uuid.UUID]*models.Order{},
		statusUpdates: map[uuid.UUID]enums.OrderStatus{},
	}
}

func (r *stubOrdersRepo) WithTx(_ *gorm.DB) Repository { return r }

func (r *stubOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.created = append(r.created, order)
	r.orders[order.ID] = order
	return order, nil
}

func (r *stubOrdersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *stubOrdersRepo) List(_ context.Context, filter ListFilter, _ *pagination.Cursor, limit int) ([]models.Order, error) {
	r.listFilter = filter
	r.listLimit = limit
	if limit < len(r.listResult) {
		return r.listResult[:limit], nil
	}
	return r.listResult, nil
}

func (r *stubOrdersRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	r.statusUpdates[id] = status
	return nil
}

type stubCatalogRepo struct {
	stock map[variantKey]int
}

type variantKey struct {
	productID uuid.UUID
	size      string
	color     string
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{stock: map[variantKey]int{}}
}

func (r *stubCatalogRepo) setStock(productID uuid.UUID, size, color string, qty int) {
	r.stock[variantKey{productID, size, color}] = qty
}

func (r *stubCatalogRepo) WithTx(_ *gorm.DB) catalog.Repository { return r }

func (r *stubCatalogRepo) Create(_ context.Context, _ *models.Product) (*models.Product, error) {
	return nil, nil
}

func (r *stubCatalogRepo) Save(_ context.Context, _ *models.Product) error { return nil }

func (r *stubCatalogRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCatalogRepo) List(_ context.Context, _ bool, _ *string, _ *pagination.Cursor, _ int) ([]models.Product, error) {
	return nil, nil
}

func (r *stubCatalogRepo) ReplaceVariants(_ context.Context, _ uuid.UUID, _ []models.ProductVariant) error {
	return nil
}

func (r *stubCatalogRepo) VariantStock(_ context.Context, productID uuid.UUID, size, color string) (int, bool, error) {
	qty, ok := r.stock[variantKey{productID, size, color}]
	return qty, ok, nil
}

func (r *stubCatalogRepo) DecrementVariantStock(_ context.Context, productID uuid.UUID, size, color string, quantity int) (bool, error) {
	key := variantKey{productID, size, color}
	available, ok := r.stock[key]
	if !ok || available < quantity {
		return false, nil
	}
	r.stock[key] = available - quantity
	return true, nil
}

type stubUserLoader struct {
	users map[uuid.UUID]*models.User
}

func newStubUserLoader() *stubUserLoader {
	return &stubUserLoader{users: map[uuid.UUID]*models.User{}}
}

func (l *stubUserLoader) add(user *models.User) *models.User {
	l.users[user.ID] = user
	return user
}

func (l *stubUserLoader) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := l.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type stubEmitter struct {
	events []outbox.DomainEvent
}

func (e *stubEmitter) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	e.events = append(e.events, event)
	return nil
}

type ordersFixture struct {
	svc      Service
	repo     *stubOrdersRepo
	catalog  *stubCatalogRepo
	users    *stubUserLoader
	carts    *cart.Manager
	emitter  *stubEmitter
	salesman *models.User
	customer *models.User
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()

	repo := newStubOrdersRepo()
	catalogRepo := newStubCatalogRepo()
	users := newStubUserLoader()
	carts := cart.NewManager()
	emitter := &stubEmitter{}
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})

	salesman := users.add(&models.User{ID: uuid.New(), Name: "Kiran", Role: enums.UserRoleSalesman})
	salesmanID := salesman.ID
	customer := users.add(&models.User{ID: uuid.New(), Name: "Ravi Traders", Role: enums.UserRoleCustomer, SalesmanID: &salesmanID})

	svc, err := NewService(repo, catalogRepo, users, carts, stock.NewGuard(catalogRepo), emitter, stubTxRunner{}, logg)
	require.NoError(t, err)

	return &ordersFixture{
		svc:      svc,
		repo:     repo,
		catalog:  catalogRepo,
		users:    users,
		carts:    carts,
		emitter:  emitter,
		salesman: salesman,
		customer: customer,
	}
}

func (f *ordersFixture) fillCart(userID uuid.UUID, title string, selling, cost float64, size, color string, qty int, stockQty int) uuid.UUID {
	productID := uuid.New()
	f.carts.Add(userID, cart.Item{
		Product: models.Product{
			ID:           productID,
			Title:        title,
			SellingPrice: selling,
			CostPrice:    cost,
		},
		Variant:  models.ProductVariant{ProductID: productID, Size: size, Color: color},
		Quantity: qty,
	})
	f.catalog.setStock(productID, size, color, stockQty)
	return productID
}

func TestSubmit_Success(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	productID := f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 2, 10)

	result, err := f.svc.Submit(ctx, SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.OrderID)

	require.Len(t, f.repo.created, 1)
	order := f.repo.created[0]
	assert.Equal(t, f.customer.ID, order.CustomerID)
	assert.Equal(t, "Ravi Traders", order.CustomerName)
	assert.Equal(t, f.salesman.ID, order.SalesmanID)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, 200.0, order.TotalAmount)

	remaining, _, err := f.catalog.VariantStock(ctx, productID, "M", "Black")
	require.NoError(t, err)
	assert.Equal(t, 8, remaining)

	assert.Empty(t, f.carts.Snapshot(f.salesman.ID).Lines)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, enums.OutboxEventOrderCreated, f.emitter.events[0].EventType)
	assert.Equal(t, order.ID, f.emitter.events[0].AggregateID)
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID})
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestSubmit_ShortfallKeepsCart(t *testing.T) {
	f := newOrdersFixture(t)
	f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 5, 2)

	result, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.OutOfStockItems, 1)
	assert.Equal(t, 2, result.OutOfStockItems[0].AvailableStock)
	assert.Equal(t, 5, result.OutOfStockItems[0].RequestedQuantity)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.emitter.events)
	assert.Len(t, f.carts.Snapshot(f.salesman.ID).Lines, 1)
}

func TestSubmit_FullstockSkipsDecrement(t *testing.T) {
	f := newOrdersFixture(t)
	productID := uuid.New()
	f.carts.Add(f.salesman.ID, cart.Item{
		Product: models.Product{
			ID:           productID,
			Title:        "Basics Tee",
			SellingPrice: 100,
			CostPrice:    60,
			Fullstock:    true,
		},
		Variant:  models.ProductVariant{ProductID: productID, Size: "M"},
		Quantity: 50,
	})

	result, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, f.repo.created, 1)
}

func TestSubmit_CustomerOfAnotherSalesman(t *testing.T) {
	f := newOrdersFixture(t)
	otherSalesmanID := uuid.New()
	stranger := f.users.add(&models.User{ID: uuid.New(), Name: "Other Shop", Role: enums.UserRoleCustomer, SalesmanID: &otherSalesmanID})
	f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)

	_, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: stranger.ID})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())
}

func TestSubmit_CustomerOrdersForSelf(t *testing.T) {
	f := newOrdersFixture(t)
	f.fillCart(f.customer.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)

	result, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.customer.ID, CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, f.salesman.ID, f.repo.created[0].SalesmanID)
}

func TestSubmit_CustomerCannotOrderForOthers(t *testing.T) {
	f := newOrdersFixture(t)
	f.fillCart(f.customer.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)

	_, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.customer.ID, CustomerID: uuid.New()})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())
}

func TestSubmit_WorkerMustBelongToSalesman(t *testing.T) {
	f := newOrdersFixture(t)
	otherSalesmanID := uuid.New()
	worker := f.users.add(&models.User{ID: uuid.New(), Name: "Suresh", Role: enums.UserRoleWorker, SalesmanID: &otherSalesmanID})
	f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)

	workerID := worker.ID
	_, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID, WorkerID: &workerID})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())
}

func TestSubmit_WithAssignedWorker(t *testing.T) {
	f := newOrdersFixture(t)
	salesmanID := f.salesman.ID
	worker := f.users.add(&models.User{ID: uuid.New(), Name: "Suresh", Role: enums.UserRoleWorker, SalesmanID: &salesmanID})
	f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)

	workerID := worker.ID
	result, err := f.svc.Submit(context.Background(), SubmitInput{ActorID: f.salesman.ID, CustomerID: f.customer.ID, WorkerID: &workerID})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, f.repo.created, 1)
	require.NotNil(t, f.repo.created[0].WorkerID)
	assert.Equal(t, worker.ID, *f.repo.created[0].WorkerID)
}

func TestRemoveShortfallItems(t *testing.T) {
	f := newOrdersFixture(t)
	keep := f.fillCart(f.salesman.ID, "Crew Neck Tee", 100, 60, "M", "Black", 1, 10)
	drop := f.fillCart(f.salesman.ID, "Zip Hoodie", 250, 150, "L", "Navy", 1, 0)

	err := f.svc.RemoveShortfallItems(context.Background(), f.salesman.ID, []ShortfallKey{
		{ProductID: drop, Size: "L", Color: "Navy"},
	})
	require.NoError(t, err)

	snapshot := f.carts.Snapshot(f.salesman.ID)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, keep, snapshot.Lines[0].Product.ID)
}

func TestRemoveShortfallItems_Empty(t *testing.T) {
	f := newOrdersFixture(t)

	err := f.svc.RemoveShortfallItems(context.Background(), f.salesman.ID, nil)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestGetOrder_Scoping(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: f.customer.ID,
		SalesmanID: f.salesman.ID,
		Status:     enums.OrderStatusPending,
	}
	f.repo.orders[order.ID] = order

	got, err := f.svc.GetOrder(ctx, Actor{ID: f.customer.ID, Role: enums.UserRoleCustomer}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.svc.GetOrder(ctx, Actor{ID: uuid.New(), Role: enums.UserRoleCustomer}, order.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())

	_, err = f.svc.GetOrder(ctx, Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, order.ID)
	assert.NoError(t, err)
}

func TestListOrders_RoleFilters(t *testing.T) {
	f := newOrdersFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListOrders(ctx, Actor{ID: f.salesman.ID, Role: enums.UserRoleSalesman}, ListInput{})
	require.NoError(t, err)
	require.NotNil(t, f.repo.listFilter.SalesmanID)
	assert.Equal(t, f.salesman.ID, *f.repo.listFilter.SalesmanID)

	workerID := uuid.New()
	_, err = f.svc.ListOrders(ctx, Actor{ID: workerID, Role: enums.UserRoleWorker}, ListInput{})
	require.NoError(t, err)
	require.NotNil(t, f.repo.listFilter.WorkerID)
	assert.Equal(t, workerID, *f.repo.listFilter.WorkerID)

	_, err = f.svc.ListOrders(ctx, Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, ListInput{})
	require.NoError(t, err)
	assert.Nil(t, f.repo.listFilter.SalesmanID)
	assert.Nil(t, f.repo.listFilter.WorkerID)
	assert.Nil(t, f.repo.listFilter.CustomerID)
}

func TestListOrders_NextCursor(t *testing.T) {
	f := newOrdersFixture(t)
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		f.repo.listResult = append(f.repo.listResult, models.Order{
			ID:        uuid.New(),
			Status:    enums.OrderStatusPending,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	result, err := f.svc.ListOrders(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, ListInput{
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.repo.listLimit)
	require.Len(t, result.Orders, 2)
	require.NotNil(t, result.NextCursor)

	cursor, err := pagination.ParseCursor(*result.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, result.Orders[1].ID, cursor.ID)
}

func TestListOrders_InvalidCursor(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.svc.ListOrders(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, ListInput{
		Pagination: pagination.Params{Cursor: "not-a-cursor"},
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestUpdateStatus_AdminTransition(t *testing.T) {
	f := newOrdersFixture(t)
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: f.customer.ID,
		SalesmanID: f.salesman.ID,
		Status:     enums.OrderStatusPending,
	}
	f.repo.orders[order.ID] = order

	got, err := f.svc.UpdateStatus(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, order.ID, enums.OrderStatusPacked)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPacked, got.Status)
	assert.Equal(t, enums.OrderStatusPacked, f.repo.statusUpdates[order.ID])

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, enums.OutboxEventOrderStatusChanged, f.emitter.events[0].EventType)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	f := newOrdersFixture(t)
	order := &models.Order{
		ID:         uuid.New(),
		SalesmanID: f.salesman.ID,
		Status:     enums.OrderStatusPending,
	}
	f.repo.orders[order.ID] = order

	_, err := f.svc.UpdateStatus(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, order.ID, enums.OrderStatusDelivered)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())
	assert.Empty(t, f.repo.statusUpdates)
}

func TestUpdateStatus_WorkerMustBeAssigned(t *testing.T) {
	f := newOrdersFixture(t)
	assigned := uuid.New()
	order := &models.Order{
		ID:         uuid.New(),
		SalesmanID: f.salesman.ID,
		WorkerID:   &assigned,
		Status:     enums.OrderStatusPacked,
	}
	f.repo.orders[order.ID] = order

	_, err := f.svc.UpdateStatus(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleWorker}, order.ID, enums.OrderStatusShipped)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())

	_, err = f.svc.UpdateStatus(context.Background(), Actor{ID: assigned, Role: enums.UserRoleWorker}, order.ID, enums.OrderStatusShipped)
	assert.NoError(t, err)
}

func TestUpdateStatus_SalesmanOwnOrdersOnly(t *testing.T) {
	f := newOrdersFixture(t)
	order := &models.Order{
		ID:         uuid.New(),
		SalesmanID: uuid.New(),
		Status:     enums.OrderStatusPending,
	}
	f.repo.orders[order.ID] = order

	_, err := f.svc.UpdateStatus(context.Background(), Actor{ID: f.salesman.ID, Role: enums.UserRoleSalesman}, order.ID, enums.OrderStatusPacked)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())
}

func TestUpdateStatus_InvalidStatusValue(t *testing.T) {
	f := newOrdersFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}, uuid.New(), enums.OrderStatus("Cancelled"))
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
