package controllers

import (
	"context"
	"net/http"

	"github.com/ecomarket/storefront/api/middleware"
	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/api/validators"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/upstream"
)

// OrdersBackend is the slice of the marketplace API the order-history
// handlers need.
type OrdersBackend interface {
	MyOrders(ctx context.Context, token string) ([]upstream.Order, error)
	CancelOrderItem(ctx context.Context, token string, orderItemID int64) error
}

func OrdersList(backend OrdersBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		orders, err := backend.MyOrders(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

func OrdersCancelItem(backend OrdersBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		itemID, err := validators.ParseURLID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.CancelOrderItem(r.Context(), state.AccessToken, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "item cancelled"})
	}
}
