package middleware

import (
	"context"

	"github.com/angelmondragon/lavka-miniapp/internal/session"
)

type contextKey string

const ctxSession contextKey = "shopper_session"

// WithSession injects the shopper's state container into the context.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, s)
}

func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return s
	}
	return nil
}
