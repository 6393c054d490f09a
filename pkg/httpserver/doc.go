// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, lifecycle hooks, and health-check handlers.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains in-flight requests within the shutdown timeout. All
// public errors wrap the ErrStart and ErrShutdown sentinels.
//
//	r := chi.NewRouter()
//	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
//	r.Use(tenant.Middleware(authn, resolver, guard, tenant.WithPublicPaths("/health")))
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(10*time.Second),
//	)
//	if err := srv.Run(ctx, r); err != nil { ... }
package httpserver
