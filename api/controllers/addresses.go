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

// AddressBackend is the slice of the marketplace API the address book
// handlers need.
type AddressBackend interface {
	Addresses(ctx context.Context, token string) ([]upstream.Address, error)
	CreateAddress(ctx context.Context, token string, input upstream.NewAddress) (upstream.Address, error)
	SetDefaultAddress(ctx context.Context, token string, addressID int64) error
	DeleteAddress(ctx context.Context, token string, addressID int64) error
}

func AddressesList(backend AddressBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses unavailable"))
			return
		}

		state := middleware.StateFromContext(r.Context())
		addresses, err := backend.Addresses(r.Context(), state.AccessToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, addresses)
	}
}

type newAddressRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	AddressLine string `json:"address_line" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Pincode     string `json:"pincode" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}

func AddressesCreate(backend AddressBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses unavailable"))
			return
		}

		var payload newAddressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		created, err := backend.CreateAddress(r.Context(), state.AccessToken, upstream.NewAddress{
			FullName:    payload.FullName,
			Phone:       payload.Phone,
			AddressLine: payload.AddressLine,
			City:        payload.City,
			State:       payload.State,
			Pincode:     payload.Pincode,
			IsDefault:   payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AddressesSetDefault(backend AddressBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses unavailable"))
			return
		}

		addressID, err := validators.ParseURLID(r, "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.SetDefaultAddress(r.Context(), state.AccessToken, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "default address updated"})
	}
}

func AddressesDelete(backend AddressBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses unavailable"))
			return
		}

		addressID, err := validators.ParseURLID(r, "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := middleware.StateFromContext(r.Context())
		if err := backend.DeleteAddress(r.Context(), state.AccessToken, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "address removed"})
	}
}
