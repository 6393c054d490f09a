// Package tenant binds authenticated principals to tenants and guards every
// request behind a single pipeline: authentication, tenant resolution (with
// operator impersonation), tenant activity, and subscription verification.
//
// The resolved tenant travels in the request context as an Access value and
// is gone when the request ends, so tenant state can never bleed between
// requests handled by the same worker.
//
// Typical wiring:
//
//	resolver := tenant.NewResolver(tenants, memberships, authorizer,
//		tenant.WithCache(tenant.NewInMemoryCache()),
//	)
//
//	mux.Use(tenant.Middleware(authn, resolver, guard,
//		tenant.WithPublicPaths("/health", "/auth/"),
//		tenant.WithLogger(log),
//	))
//
// Handlers read the bound tenant with tenant.FromContext or, behind
// RequireTenant, tenant.MustFromContext.
package tenant
