package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/api/responses"
	"github.com/adithyanarayan/stockline-backend/api/validators"
	"github.com/adithyanarayan/stockline-backend/internal/catalog"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
	"github.com/adithyanarayan/stockline-backend/pkg/pagination"
)

// ProductList returns the active catalog, grouped for the size/color pickers.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input := catalog.ListProductsInput{
			ActiveOnly: true,
			Pagination: paginationParams(r),
		}
		if category := r.URL.Query().Get("category"); category != "" {
			input.Category = &category
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail returns one product with its color groups.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Description  *string                `json:"description"`
	Category     string                 `json:"category" validate:"required"`
	SellingPrice float64                `json:"selling_price" validate:"required,gt=0"`
	CostPrice    float64                `json:"cost_price" validate:"gte=0"`
	Images       []string               `json:"images"`
	Fullstock    bool                   `json:"fullstock"`
	IsActive     *bool                  `json:"is_active"`
	Variants     []catalog.VariantInput `json:"variants" validate:"dive"`
}

// AdminProductCreate registers a new catalog product.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Title:        body.Title,
			Description:  body.Description,
			Category:     body.Category,
			SellingPrice: body.SellingPrice,
			CostPrice:    body.CostPrice,
			Images:       body.Images,
			Fullstock:    body.Fullstock,
			IsActive:     isActive,
			Variants:     body.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Title        *string                 `json:"title"`
	Description  *string                 `json:"description"`
	Category     *string                 `json:"category"`
	SellingPrice *float64                `json:"selling_price" validate:"omitempty,gt=0"`
	CostPrice    *float64                `json:"cost_price" validate:"omitempty,gte=0"`
	Images       *[]string               `json:"images"`
	Fullstock    *bool                   `json:"fullstock"`
	IsActive     *bool                   `json:"is_active"`
	Variants     *[]catalog.VariantInput `json:"variants" validate:"omitempty,dive"`
}

// AdminProductUpdate mutates product fields and, when provided, replaces the
// variant matrix wholesale.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, catalog.UpdateProductInput{
			Title:        body.Title,
			Description:  body.Description,
			Category:     body.Category,
			SellingPrice: body.SellingPrice,
			CostPrice:    body.CostPrice,
			Images:       body.Images,
			Fullstock:    body.Fullstock,
			IsActive:     body.IsActive,
			Variants:     body.Variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func paginationParams(r *http.Request) pagination.Params {
	params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}
	return params
}
