package rbac

import (
	"context"
	"log/slog"
)

type roleCtxKey struct{}

type membershipCtxKey struct{}

// WithRole stores the resolved role in the context for downstream checks.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the resolved role from the context.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok
}

// WithMembership stores the request's resolved membership in the context so
// repeated role/subsidiary queries within one request avoid extra lookups.
func WithMembership(ctx context.Context, m *Membership) context.Context {
	return context.WithValue(ctx, membershipCtxKey{}, m)
}

// MembershipFromContext retrieves the resolved membership from the context.
func MembershipFromContext(ctx context.Context) (*Membership, bool) {
	m, ok := ctx.Value(membershipCtxKey{}).(*Membership)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// RoleExtractor returns a logger context extractor that adds the resolved
// role to log records.
func RoleExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if role, ok := RoleFromContext(ctx); ok && role != "" {
			return slog.String("role", role), true
		}
		return slog.Attr{}, false
	}
}
