package controllers

import (
	"context"
	"net/http"

	"github.com/ecomarket/storefront/api/middleware"
	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/api/validators"
	"github.com/ecomarket/storefront/internal/policy"
	"github.com/ecomarket/storefront/internal/session"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/upstream"
)

// AuthBackend is the slice of the marketplace API the auth handlers need.
type AuthBackend interface {
	Login(ctx context.Context, input upstream.LoginInput) (upstream.LoginResult, error)
	Register(ctx context.Context, input upstream.RegisterInput) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Role string `json:"role"`
}

// Login exchanges credentials with the backend and binds the grant to the
// visitor's session. The tokens never reach the browser.
func Login(backend AuthBackend, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil || sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := backend.Login(r.Context(), upstream.LoginInput{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := policy.ParseRole(result.Role)
		if role == policy.RoleAnonymous {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "backend returned an unknown role"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := sessions.Login(r.Context(), sessionID, role, result.Access); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "binding session"))
			return
		}

		responses.WriteSuccess(w, loginResponse{Role: string(role)})
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=CUSTOMER SELLER"`
}

// Register forwards the sign-up to the backend. Admin accounts cannot be
// created through the storefront.
func Register(backend AuthBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := backend.Register(r.Context(), upstream.RegisterInput{
			Email:    payload.Email,
			Password: payload.Password,
			FullName: payload.FullName,
			Phone:    payload.Phone,
			Role:     payload.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"message": "account created"})
	}
}

// Logout tears down the session's server-side state. The cookie stays; it
// now points at an anonymous session.
func Logout(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := sessions.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "tearing down session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "signed out"})
	}
}
