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

// ProfileBackend is the slice of the marketplace API the account profile
// handlers need.
type ProfileBackend interface {
	Profile(ctx context.Context, token string) (upstream.Profile, error)
	UpdateProfile(ctx context.Context, token string, input upstream.ProfileUpdate) error
}

func ProfileGet(backend ProfileBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		profile, err := backend.Profile(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type profileUpdateRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

func ProfileUpdate(backend ProfileBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		err := backend.UpdateProfile(r.Context(), state.AccessToken, upstream.ProfileUpdate{
			FullName: payload.FullName,
			Phone:    payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "profile updated"})
	}
}
