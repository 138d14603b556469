package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ecomarket/storefront/api/responses"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy defines the fixed-window throttling parameters for one
// auth surface (login or register).
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{
		name:       name,
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// window is one counter to check: a scope plus its limit.
type window struct {
	kind  string
	scope string
	ident string
	limit int
}

// windows builds the counters that apply to this request. The email counter
// keys on a sha256 of the normalized address so raw emails never reach the
// store.
func (p AuthRateLimitPolicy) windows(r *http.Request) ([]window, error) {
	var out []window

	if p.ipLimit > 0 {
		if ip := clientIP(r); ip != "" {
			out = append(out, window{
				kind:  "ip",
				scope: fmt.Sprintf("ip:%s:%s", p.name, ip),
				ident: ip,
				limit: p.ipLimit,
			})
		}
	}

	if p.emailLimit > 0 {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if email := emailFromBody(body); email != "" {
			hash := sha256Hex(email)
			out = append(out, window{
				kind:  "email",
				scope: fmt.Sprintf("email:%s:%s", p.name, hash),
				ident: hash,
				limit: p.emailLimit,
			})
		}
	}

	return out, nil
}

// AuthRateLimit enforces the policy's counters for auth endpoints. Without a
// backing store (sqlite and postgres storage modes) it is a pass-through.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			windows, err := policy.windows(r)
			if err != nil {
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read request"))
				return
			}

			for _, win := range windows {
				allowed, count, err := store.FixedWindowAllow(ctx, win.scope, int64(win.limit), policy.window)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rate limiting"))
					return
				}
				if allowed {
					continue
				}

				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"scope":          win.kind,
						"policy":         policy.name,
						win.kind:         win.ident,
						"attempts":       count,
						"limit":          win.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "auth.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers proxy-set headers and falls back to the socket peer.
func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func emailFromBody(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

func sha256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
