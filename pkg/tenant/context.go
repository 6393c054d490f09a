package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Access is the request-scoped record of "the tenant active on this request".
// It lives in the request context and dies with it, so a pooled worker can
// never leak one request's tenant into the next: there is no process-wide
// slot to clear.
type Access struct {
	Tenant       *Tenant
	Impersonated bool
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithAccess adds the resolved tenant access to the context.
func WithAccess(ctx context.Context, access Access) context.Context {
	return context.WithValue(ctx, contextKey{}, access)
}

// AccessFromContext retrieves the full access record from the context.
func AccessFromContext(ctx context.Context) (Access, bool) {
	access, ok := ctx.Value(contextKey{}).(Access)
	return access, ok
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant is bound to the request (public paths and
// operator-global access).
func FromContext(ctx context.Context) (*Tenant, bool) {
	access, ok := AccessFromContext(ctx)
	if !ok || access.Tenant == nil {
		return nil, false
	}
	return access.Tenant, true
}

// IDFromContext retrieves just the tenant ID from the context.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext retrieves the tenant from the context.
// Panics if no tenant is found. Use this only in handlers mounted behind
// RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// IsImpersonated reports whether the request's tenant was entered through
// operator impersonation. Downstream code uses this for audit trails;
// the pipeline uses it to skip subscription verification.
func IsImpersonated(ctx context.Context) bool {
	access, ok := AccessFromContext(ctx)
	return ok && access.Impersonated
}

// LoggerExtractor returns a logger context extractor that adds the tenant ID
// (and an impersonation marker when relevant) to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		access, ok := AccessFromContext(ctx)
		if !ok || access.Tenant == nil {
			return slog.Attr{}, false
		}
		if access.Impersonated {
			return slog.Group("tenant",
				slog.String("id", access.Tenant.ID.String()),
				slog.Bool("impersonated", true),
			), true
		}
		return slog.String("tenant_id", access.Tenant.ID.String()), true
	}
}
