package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/pagination"
)

// Service exposes catalog browsing and admin product management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
}

// ListProductsInput captures catalog listing filters.
type ListProductsInput struct {
	ActiveOnly bool
	Category   *string
	Pagination pagination.Params
}

type service struct {
	repo Repository
}

// NewService constructs a catalog service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	rows, err := s.repo.List(ctx, input.ActiveOnly, input.Category, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	products := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		products = append(products, ToDTO(row))
	}
	return &ProductListResult{Products: products, NextCursor: nextCursor}, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	dto := ToDTO(*product)
	return &dto, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input.Title, input.Category, input.SellingPrice, input.CostPrice, input.Variants); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Category:     strings.TrimSpace(input.Category),
		SellingPrice: input.SellingPrice,
		CostPrice:    input.CostPrice,
		Images:       pq.StringArray(input.Images),
		Fullstock:    input.Fullstock,
		IsActive:     input.IsActive,
		Variants:     variantsFromInput(input.Variants),
	}
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	dto := ToDTO(*created)
	return &dto, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.Images != nil {
		product.Images = pq.StringArray(*input.Images)
	}
	if input.Fullstock != nil {
		product.Fullstock = *input.Fullstock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateProductInput(product.Title, product.Category, product.SellingPrice, product.CostPrice, nil); err != nil {
		return nil, err
	}

	variants := product.Variants
	product.Variants = nil
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}

	if input.Variants != nil {
		if err := validateVariants(*input.Variants); err != nil {
			return nil, err
		}
		variants = variantsFromInput(*input.Variants)
		if err := s.repo.ReplaceVariants(ctx, product.ID, variants); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing variants")
		}
	}
	product.Variants = variants

	dto := ToDTO(*product)
	return &dto, nil
}

func validateProductInput(title, category string, sellingPrice, costPrice float64, variants []VariantInput) error {
	if strings.TrimSpace(title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if sellingPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "selling price cannot be negative")
	}
	if costPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
	}
	if variants != nil {
		return validateVariants(variants)
	}
	return nil
}

func validateVariants(variants []VariantInput) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if strings.TrimSpace(v.Size) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant size is required")
		}
		if v.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock cannot be negative")
		}
		color := v.Color
		if color == "" {
			color = models.DefaultColor
		}
		key := v.Size + "|" + color
		if _, dup := seen[key]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate variant %s/%s", v.Size, color))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func variantsFromInput(inputs []VariantInput) []models.ProductVariant {
	variants := make([]models.ProductVariant, 0, len(inputs))
	for _, v := range inputs {
		color := v.Color
		if color == "" {
			color = models.DefaultColor
		}
		variants = append(variants, models.ProductVariant{
			Size:  v.Size,
			Color: color,
			Stock: v.Stock,
		})
	}
	return variants
}
