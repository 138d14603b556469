package middleware

import (
	"net/http"
	"time"

	"github.com/ecomarket/storefront/internal/session"
	"github.com/ecomarket/storefront/pkg/auth"
	"github.com/ecomarket/storefront/pkg/config"
	"github.com/ecomarket/storefront/pkg/logger"
)

// Session resolves the visitor's session on every request. A missing or
// unverifiable cookie gets a fresh anonymous session; the profile record is
// consulted each time so role changes apply without reissuing the cookie.
func Session(mgr *session.Manager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if sid, err := auth.ParseSessionToken(cfg, cookie.Value); err == nil {
					sessionID = sid
				} else if logg != nil {
					logg.Warn(ctx, "replacing unverifiable session cookie")
				}
			}

			if sessionID == "" {
				sessionID = auth.NewSessionID()
				token, err := auth.MintSessionToken(cfg, time.Now(), sessionID)
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "minting session cookie", err)
					}
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			state := mgr.Current(ctx, sessionID)

			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
				if state.Authenticated() {
					ctx = logg.WithRole(ctx, string(state.Role))
				}
			}
			ctx = WithSession(ctx, sessionID, state)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
