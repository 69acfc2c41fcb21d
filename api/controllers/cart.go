package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/api/responses"
	"github.com/adithyanarayan/stockline-backend/api/validators"
	cartsvc "github.com/adithyanarayan/stockline-backend/internal/cart"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
)

// CartFetch returns the caller's session cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(svc.Get(r.Context(), userID)))
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CartAddItem adds or merges one line into the session cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.AddItem(r.Context(), userID, cartsvc.AddItemInput{
			ProductID: body.ProductID,
			Size:      body.Size,
			Color:     body.Color,
			Quantity:  body.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type cartLineKeyRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color"`
}

// CartRemoveItem drops one line from the session cart. Removing a line that
// is not present is a no-op.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartLineKeyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := svc.RemoveItem(r.Context(), userID, cartsvc.NewKey(body.ProductID, body.Size, body.Color))
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

type updateCartQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity"`
}

// CartUpdateQuantity sets a line's quantity. Zero or negative removes it.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := svc.UpdateQuantity(r.Context(), userID, cartsvc.NewKey(body.ProductID, body.Size, body.Color), body.Quantity)
		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartClear empties the session cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.Clear(r.Context(), userID)
		responses.WriteSuccess(w, newCartResponse(svc.Get(r.Context(), userID)))
	}
}

type cartLineResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Quantity     int       `json:"quantity"`
	SellingPrice float64   `json:"selling_price"`
	LineTotal    float64   `json:"line_total"`
	AddedImage   *string   `json:"image,omitempty"`
}

type cartResponse struct {
	Items       []cartLineResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalAmount float64            `json:"total_amount"`
}

func newCartResponse(snapshot *cartsvc.Snapshot) cartResponse {
	if snapshot == nil {
		return cartResponse{Items: []cartLineResponse{}}
	}

	items := make([]cartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		item := cartLineResponse{
			ProductID:    line.Product.ID,
			ProductTitle: line.Product.Title,
			Size:         line.Variant.Size,
			Color:        line.Variant.Color,
			Quantity:     line.Quantity,
			SellingPrice: line.Product.SellingPrice,
			LineTotal:    line.Product.SellingPrice * float64(line.Quantity),
		}
		if len(line.Product.Images) > 0 {
			image := line.Product.Images[0]
			item.AddedImage = &image
		}
		items = append(items, item)
	}

	return cartResponse{
		Items:       items,
		TotalItems:  snapshot.TotalItems,
		TotalAmount: snapshot.TotalAmount,
	}
}
