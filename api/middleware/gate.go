package middleware

import (
	"net/http"

	"github.com/ecomarket/storefront/internal/policy"
	"github.com/ecomarket/storefront/pkg/logger"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Gate enforces the capability table on every request. Visitors without a
// session are sent to the login page; signed-in accounts that lack the
// capability are sent home. The check runs per request, so a role change
// takes effect on the very next hit.
func Gate(capability policy.Capability, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			state := StateFromContext(ctx)

			if policy.CanAccess(state.Role, capability) {
				next.ServeHTTP(w, r)
				return
			}

			target := homePath
			if !state.Authenticated() {
				target = loginPath
			}

			if logg != nil {
				logCtx := logg.WithFields(ctx, map[string]any{
					"capability": string(capability),
					"redirect":   target,
				})
				logg.Warn(logCtx, "gate.denied")
			}

			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}
