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

// AdminBackend is the slice of the marketplace API the admin console
// handlers need.
type AdminBackend interface {
	AdminSellers(ctx context.Context, token string) ([]upstream.SellerSummary, error)
	VerifySeller(ctx context.Context, token string, sellerID int64) error
}

func AdminSellersList(backend AdminBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		sellers, err := backend.AdminSellers(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sellers)
	}
}

func AdminVerifySeller(backend AdminBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		sellerID, err := validators.ParseURLID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.VerifySeller(r.Context(), state.AccessToken, sellerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "seller verified"})
	}
}
