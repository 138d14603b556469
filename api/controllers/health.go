package controllers

import (
	"context"
	"net/http"

	"github.com/ecomarket/storefront/api/responses"
	"github.com/ecomarket/storefront/pkg/config"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the session store and the marketplace backend. Either
// being down makes the gateway useless, so readiness reports both.
func HealthReady(cfg *config.Config, store, backend pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		checks := map[string]string{"storage": "ok", "backend": "ok"}
		healthy := true

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				checks["storage"] = err.Error()
				healthy = false
			}
		}
		if backend != nil {
			if err := backend.Ping(r.Context()); err != nil {
				checks["backend"] = err.Error()
				healthy = false
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUpstream, "dependency not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
