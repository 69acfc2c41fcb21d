package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
)

// AddItemInput identifies the variant and quantity to add.
type AddItemInput struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int
}

// Service exposes cart operations against the session cart. Products are
// snapshotted at add-time so later price edits do not change a cart in
// progress.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*Snapshot, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, key Key) *Snapshot
	UpdateQuantity(ctx context.Context, userID uuid.UUID, key Key, quantity int) *Snapshot
	Clear(ctx context.Context, userID uuid.UUID)
	Get(ctx context.Context, userID uuid.UUID) *Snapshot
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	manager  *Manager
	products productLoader
}

// NewService constructs a cart service instance.
func NewService(manager *Manager, products productLoader) (Service, error) {
	if manager == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{manager: manager, products: products}, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*Snapshot, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not active")
	}

	color := input.Color
	if color == "" {
		color = models.DefaultColor
	}
	variant, found := findVariant(product.Variants, input.Size, color)
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}

	s.manager.Add(userID, Item{
		Product:  *product,
		Variant:  variant,
		Quantity: input.Quantity,
	})
	snapshot := s.manager.Snapshot(userID)
	return &snapshot, nil
}

func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, key Key) *Snapshot {
	s.manager.Remove(userID, key)
	snapshot := s.manager.Snapshot(userID)
	return &snapshot
}

func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, key Key, quantity int) *Snapshot {
	s.manager.UpdateQuantity(userID, key, quantity)
	snapshot := s.manager.Snapshot(userID)
	return &snapshot
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) {
	s.manager.Clear(userID)
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) *Snapshot {
	snapshot := s.manager.Snapshot(userID)
	return &snapshot
}

func findVariant(variants []models.ProductVariant, size, color string) (models.ProductVariant, bool) {
	for _, v := range variants {
		variantColor := v.Color
		if variantColor == "" {
			variantColor = models.DefaultColor
		}
		if v.Size == size && variantColor == color {
			return v, true
		}
	}
	return models.ProductVariant{}, false
}
