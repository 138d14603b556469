package controllers

import (
	"net/http"

	"github.com/ecomarket/storefront/api/middleware"
	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/api/validators"
	checkoutsvc "github.com/ecomarket/storefront/internal/checkout"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

type checkoutRequest struct {
	AddressID int64 `json:"address_id" validate:"required,gt=0"`
}

type checkoutResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// CheckoutSubmit turns the session's cart into an order.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		state := middleware.StateFromContext(ctx)

		result, err := svc.Submit(ctx, sessionID, state.AccessToken, payload.AddressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Message: result.Message,
			OrderID: result.OrderID,
		})
	}
}
