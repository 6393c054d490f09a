package tenant

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

// SubscriptionVerifier validates that a tenant's subscription currently
// permits access. subscription.Guard satisfies it.
type SubscriptionVerifier interface {
	Verify(ctx context.Context, tenantID uuid.UUID) error
}

// Middleware builds the per-request tenant pipeline:
//
//	public path  -> pass through untouched, no authentication, no context
//	authenticate -> 401 on missing/invalid credential
//	resolve      -> member / operator-global / impersonation (see Resolver)
//	activity     -> inactive tenants rejected, impersonated or not
//	subscription -> verified for member access only; impersonation and
//	                operator-global access skip it so staff can support
//	                accounts with lapsed billing
//	ready        -> principal, access and membership placed in the request
//	                context for downstream handlers
//
// All tenant state lives in the request context, which ends with the
// request on every exit path including panics; nothing is stored that
// could leak into the next request served by the same worker.
//
// The subscription guard is mandatory: passing nil panics at construction
// so a misconfigured service fails at startup, not at runtime.
func Middleware(auth principal.Authenticator, resolver Resolver, guard SubscriptionVerifier, opts ...Option) func(http.Handler) http.Handler {
	if auth == nil {
		panic("tenant: authenticator is required")
	}
	if resolver == nil {
		panic("tenant: resolver is required")
	}
	if guard == nil {
		panic("tenant: subscription guard is required")
	}

	cfg := &config{
		errorHandler:  DefaultErrorHandler,
		requireActive: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.publicPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			p, err := auth.Authenticate(r)
			if err != nil || p == nil {
				cfg.errorHandler(w, r, principal.ErrUnauthenticated)
				return
			}

			resolved, err := resolver.Resolve(r.Context(), p, r)
			if err != nil {
				cfg.logger.WarnContext(r.Context(), "tenant resolution rejected",
					slog.String("principal_id", p.ID.String()), slog.Any("error", err))
				cfg.errorHandler(w, r, err)
				return
			}

			ctx := principal.WithPrincipal(r.Context(), p)

			// Operator-global access: no tenant bound, nothing to verify.
			if resolved.Tenant == nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if cfg.requireActive && !resolved.Tenant.Active {
				cfg.errorHandler(w, r, ErrTenantInactive)
				return
			}

			if !resolved.Impersonated {
				if err := guard.Verify(ctx, resolved.Tenant.ID); err != nil {
					cfg.errorHandler(w, r, err)
					return
				}
			}

			ctx = WithAccess(ctx, Access{Tenant: resolved.Tenant, Impersonated: resolved.Impersonated})
			if resolved.Membership != nil {
				ctx = rbac.WithMembership(ctx, resolved.Membership)
				ctx = rbac.WithRole(ctx, resolved.Membership.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant ensures a tenant is bound to the request context. Mount it
// on routes that must never run with operator-global access.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
