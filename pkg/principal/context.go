package principal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithPrincipal adds the authenticated principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the principal from the context.
// Returns nil, false if no principal is found.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok
}

// IDFromContext retrieves just the principal ID from the context.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	p, ok := FromContext(ctx)
	if !ok || p == nil {
		return uuid.UUID{}, false
	}
	return p.ID, true
}

// MustFromContext retrieves the principal from the context.
// Panics if no principal is found. Use this only in handlers mounted
// behind the authentication pipeline.
func MustFromContext(ctx context.Context) *Principal {
	p, ok := FromContext(ctx)
	if !ok || p == nil {
		panic("principal: no principal in context")
	}
	return p
}

// LoggerExtractor returns a logger context extractor that adds the principal ID to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("principal_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
