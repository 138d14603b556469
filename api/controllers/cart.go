package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ecomarket/storefront/api/middleware"
	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/api/validators"
	cartsvc "github.com/ecomarket/storefront/internal/cart"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

type cartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"product_image,omitempty"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Count int                `json:"count"`
	Total string             `json:"total"`
}

func newCartResponse(c cartsvc.Cart) cartResponse {
	resp := cartResponse{
		Lines: make([]cartLineResponse, 0, len(c.Lines)),
		Count: c.Count(),
		Total: c.Total().String(),
	}
	for _, ln := range c.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ProductID: ln.ProductID,
			Title:     ln.Title,
			Price:     ln.UnitPrice.String(),
			Quantity:  ln.Quantity,
			ImageURL:  ln.ImageURL,
			Subtotal:  ln.Subtotal().String(),
		})
	}
	return resp
}

// CartView returns the session's cart.
func CartView(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		current, err := svc.View(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current))
	}
}

type addCartItemRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required"`
	Price     string `json:"price" validate:"required"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"product_image"`
}

// CartAdd puts a product in the cart, merging with an existing line.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a decimal string"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		current, err := svc.AddItem(r.Context(), sessionID, cartsvc.Line{
			ProductID: payload.ProductID,
			Title:     payload.Title,
			UnitPrice: price,
			Quantity:  payload.Quantity,
			ImageURL:  payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartSetQuantity replaces the quantity of one line.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParseURLID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		current, err := svc.SetItemQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current))
	}
}

// CartRemove drops one line from the cart.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParseURLID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		current, err := svc.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(current))
	}
}

// CartCount returns the badge number shown in the navbar.
func CartCount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		count, err := svc.Count(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"count": count})
	}
}
