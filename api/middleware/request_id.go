package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ecomarket/storefront/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID propagates an inbound request id or mints one, echoes it on the
// response, and seeds the request-scoped logger with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := inboundRequestID(r)
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// inboundRequestID trusts a caller-supplied id only when it is short enough
// to be a sane correlation token.
func inboundRequestID(r *http.Request) string {
	id := r.Header.Get(requestIDHeader)
	if id == "" || len(id) > 64 {
		return uuid.NewString()
	}
	return id
}
