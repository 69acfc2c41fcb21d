package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

// errStockRace aborts the submission transaction when a guarded decrement
// loses to a concurrent order.
var errStockRace = errors.New("stock changed during submission")

// Actor identifies the authenticated caller for scoping decisions.
type Actor struct {
	ID         uuid.UUID
	Role       enums.UserRole
	SalesmanID *uuid.UUID
}

// ShortfallKey identifies one cart line to drop after a shortfall report.
type ShortfallKey struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color"`
}

// ListInput captures order listing filters.
type ListInput struct {
	Status     *enums.OrderStatus
	Pagination pagination.Params
}

// Service exposes order submission and fulfillment operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	RemoveShortfallItems(ctx context.Context, actorID uuid.UUID, items []ShortfallKey) error
	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, actor Actor, input ListInput) (*OrderListResult, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type cartManager interface {
	Snapshot(userID uuid.UUID) cart.Snapshot
	Clear(userID uuid.UUID)
	RemoveAll(userID uuid.UUID, keys []cart.Key)
}

type sufficiencyChecker interface {
	CheckSufficiency(ctx context.Context, items []stock.RequestedItem) (*stock.Result, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	users       userLoader
	carts       cartManager
	guard       sufficiencyChecker
	emitter     eventEmitter
	tx          txRunner
	logg        *logger.Logger
}

// NewService constructs an orders service instance.
func NewService(repo Repository, catalogRepo catalog.Repository, users userLoader, carts cartManager, guard sufficiencyChecker, emitter eventEmitter, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if guard == nil {
		return nil, fmt.Errorf("stock guard required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		users:       users,
		carts:       carts,
		guard:       guard,
		emitter:     emitter,
		tx:          tx,
		logg:        logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	snapshot := s.carts.Snapshot(input.ActorID)
	if len(snapshot.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer is required")
	}

	customer, salesman, worker, err := s.resolveParties(ctx, input)
	if err != nil {
		return nil, err
	}

	requested := requestedItems(snapshot.Lines)
	precheck, err := s.guard.CheckSufficiency(ctx, requested)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking stock")
	}
	if !precheck.HasSufficientStock {
		return &SubmitResult{
			Success:         false,
			Message:         "insufficient stock",
			OutOfStockItems: precheck.OutOfStockItems,
		}, nil
	}

	order := Assemble(snapshot.Lines, *customer, *salesman, worker)

	var raceShortfalls []stock.ShortfallItem
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.Create(ctx, &order)
		if err != nil {
			return err
		}

		txCatalog := s.catalogRepo.WithTx(tx)
		for _, line := range snapshot.Lines {
			if line.Product.Fullstock {
				continue
			}
			key := cart.ItemKey(line)
			ok, err := txCatalog.DecrementVariantStock(ctx, key.ProductID, key.Size, key.Color, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, _, lookupErr := txCatalog.VariantStock(ctx, key.ProductID, key.Size, key.Color)
				if lookupErr != nil {
					available = 0
				}
				raceShortfalls = append(raceShortfalls, stock.ShortfallItem{
					ProductName:       line.Product.Title,
					Size:              key.Size,
					Color:             key.Color,
					AvailableStock:    available,
					RequestedQuantity: line.Quantity,
				})
				return errStockRace
			}
		}

		return s.emitter.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderCreated,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   created.ID,
			Actor:         &outbox.ActorRef{UserID: input.ActorID},
			Version:       1,
			Data: map[string]any{
				"order_id":     created.ID,
				"customer_id":  created.CustomerID,
				"salesman_id":  created.SalesmanID,
				"item_count":   len(created.Items),
				"total_amount": created.TotalAmount,
			},
		})
	})
	if txErr != nil {
		if errors.Is(txErr, errStockRace) {
			return &SubmitResult{
				Success:         false,
				Message:         "insufficient stock",
				OutOfStockItems: raceShortfalls,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "creating order")
	}

	s.carts.Clear(input.ActorID)

	logCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(logCtx, "order created")

	orderID := order.ID
	return &SubmitResult{Success: true, OrderID: &orderID}, nil
}

func (s *service) resolveParties(ctx context.Context, input SubmitInput) (*Party, *Party, *Party, error) {
	actor, err := s.loadUser(ctx, input.ActorID, "actor")
	if err != nil {
		return nil, nil, nil, err
	}

	var customer, salesman *models.User
	switch actor.Role {
	case enums.UserRoleSalesman:
		salesman = actor
		customer, err = s.loadUser(ctx, input.CustomerID, "customer")
		if err != nil {
			return nil, nil, nil, err
		}
		if customer.SalesmanID == nil || *customer.SalesmanID != salesman.ID {
			return nil, nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "customer does not belong to salesman")
		}
	case enums.UserRoleCustomer:
		if input.CustomerID != actor.ID {
			return nil, nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "customers can only order for themselves")
		}
		customer = actor
		if customer.SalesmanID == nil {
			return nil, nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "customer has no assigned salesman")
		}
		salesman, err = s.loadUser(ctx, *customer.SalesmanID, "salesman")
		if err != nil {
			return nil, nil, nil, err
		}
	default:
		return nil, nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot submit orders")
	}

	if customer.Role != enums.UserRoleCustomer {
		return nil, nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "selected user is not a customer")
	}

	var worker *Party
	if input.WorkerID != nil {
		workerUser, err := s.loadUser(ctx, *input.WorkerID, "worker")
		if err != nil {
			return nil, nil, nil, err
		}
		if workerUser.Role != enums.UserRoleWorker {
			return nil, nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "selected user is not a worker")
		}
		if workerUser.SalesmanID == nil || *workerUser.SalesmanID != salesman.ID {
			return nil, nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "worker does not belong to salesman")
		}
		worker = &Party{ID: workerUser.ID, Name: workerUser.Name}
	}

	return &Party{ID: customer.ID, Name: customer.Name},
		&Party{ID: salesman.ID, Name: salesman.Name},
		worker, nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID, label string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", label))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("loading %s", label))
	}
	return user, nil
}

func (s *service) RemoveShortfallItems(ctx context.Context, actorID uuid.UUID, items []ShortfallKey) error {
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no items to remove")
	}
	keys := make([]cart.Key, 0, len(items))
	for _, item := range items {
		keys = append(keys, cart.NewKey(item.ProductID, item.Size, item.Color))
	}
	s.carts.RemoveAll(actorID, keys)
	return nil
}

func (s *service) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if !actorCanSee(actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	dto := ToDTO(*order)
	return &dto, nil
}

func (s *service) ListOrders(ctx context.Context, actor Actor, input ListInput) (*OrderListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	filter := ListFilter{Status: input.Status}
	switch actor.Role {
	case enums.UserRoleAdmin:
		// admins see every order
	case enums.UserRoleSalesman:
		id := actor.ID
		filter.SalesmanID = &id
	case enums.UserRoleWorker:
		id := actor.ID
		filter.WorkerID = &id
	case enums.UserRoleCustomer:
		id := actor.ID
		filter.CustomerID = &id
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list orders")
	}

	rows, err := s.repo.List(ctx, filter, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ToDTO(row))
	}
	return &OrderListResult{Orders: dtos, NextCursor: nextCursor}, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	switch actor.Role {
	case enums.UserRoleAdmin:
	case enums.UserRoleSalesman:
		if order.SalesmanID != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to salesman")
		}
	case enums.UserRoleWorker:
		if order.WorkerID == nil || *order.WorkerID != actor.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is not assigned to worker")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot update order status")
	}

	from := order.Status
	if !from.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition from %s to %s", from, next))
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		return s.emitter.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderStatusChanged,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   orderID,
			Actor:         &outbox.ActorRef{UserID: actor.ID, Role: string(actor.Role)},
			Version:       1,
			Data: map[string]any{
				"order_id":    orderID,
				"customer_id": order.CustomerID,
				"salesman_id": order.SalesmanID,
				"from_status": from,
				"to_status":   next,
			},
		})
	})
	if txErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "updating order status")
	}

	order.Status = next
	dto := ToDTO(*order)
	return &dto, nil
}

func actorCanSee(actor Actor, order *models.Order) bool {
	switch actor.Role {
	case enums.UserRoleAdmin:
		return true
	case enums.UserRoleSalesman:
		return order.SalesmanID == actor.ID
	case enums.UserRoleWorker:
		return order.WorkerID != nil && *order.WorkerID == actor.ID
	case enums.UserRoleCustomer:
		return order.CustomerID == actor.ID
	default:
		return false
	}
}

func requestedItems(lines []cart.Item) []stock.RequestedItem {
	items := make([]stock.RequestedItem, 0, len(lines))
	for _, line := range lines {
		key := cart.ItemKey(line)
		items = append(items, stock.RequestedItem{
			ProductID:   key.ProductID,
			ProductName: line.Product.Title,
			Size:        key.Size,
			Color:       key.Color,
			Quantity:    line.Quantity,
			Fullstock:   line.Product.Fullstock,
		})
	}
	return items
}
