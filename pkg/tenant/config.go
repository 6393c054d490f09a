package tenant

import "time"

// Config carries the environment-tunable pipeline settings. Services load it
// with the config package and fan it out to the resolver and middleware:
//
//	var cfg tenant.Config
//	config.MustLoad(&cfg)
//
//	resolver := tenant.NewResolver(tenants, members, authz, cfg.ResolverOptions()...)
//	mw := tenant.Middleware(authn, resolver, guard, cfg.MiddlewareOptions()...)
type Config struct {
	ImpersonationHeader string        `env:"TENANT_IMPERSONATION_HEADER" envDefault:"X-Tenant-ID"`
	PublicPaths         []string      `env:"TENANT_PUBLIC_PATHS" envSeparator:","`
	CacheTTL            time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	RequireActive       bool          `env:"TENANT_REQUIRE_ACTIVE" envDefault:"true"`
}

// ResolverOptions converts the config into resolver options.
func (c Config) ResolverOptions() []ResolverOption {
	opts := make([]ResolverOption, 0, 2)
	if c.ImpersonationHeader != "" {
		opts = append(opts, WithImpersonationHeader(c.ImpersonationHeader))
	}
	if c.CacheTTL > 0 {
		opts = append(opts, WithCacheTTL(c.CacheTTL))
	}
	return opts
}

// MiddlewareOptions converts the config into middleware options.
func (c Config) MiddlewareOptions() []Option {
	opts := make([]Option, 0, 2)
	if len(c.PublicPaths) > 0 {
		opts = append(opts, WithPublicPaths(c.PublicPaths...))
	}
	opts = append(opts, WithRequireActive(c.RequireActive))
	return opts
}
