package middleware

import (
	"context"

	"github.com/ecomarket/storefront/internal/session"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxState     contextKey = "session_state"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func StateFromContext(ctx context.Context) session.State {
	if ctx == nil {
		return session.State{}
	}
	if v, ok := ctx.Value(ctxState).(session.State); ok {
		return v
	}
	return session.State{}
}

// WithSession injects the resolved session into the context for downstream
// handlers.
func WithSession(ctx context.Context, sessionID string, state session.State) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	return context.WithValue(ctx, ctxState, state)
}
