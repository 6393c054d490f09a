package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

// DefaultImpersonationHeader names the target tenant of an operator
// impersonation attempt.
const DefaultImpersonationHeader = "X-Tenant-ID"

const (
	// maxIdentifierLength bounds impersonation targets to DNS-safe slugs
	// and UUID strings.
	maxIdentifierLength = 63
)

// identifierPattern accepts slugs and UUID strings: alphanumeric start,
// hyphens allowed.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// Resolved is the outcome of binding a principal to a tenant.
// A nil Tenant means operator-global access.
type Resolved struct {
	Tenant       *Tenant
	Impersonated bool

	// Membership is set on the member branch so downstream role queries
	// reuse the lookup instead of repeating it.
	Membership *rbac.Membership
}

// Resolver maps an authenticated principal to its tenant. The pipeline
// depends only on this interface; deployments with custom resolution rules
// inject their own implementation.
type Resolver interface {
	Resolve(ctx context.Context, p *principal.Principal, r *http.Request) (*Resolved, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, p *principal.Principal, r *http.Request) (*Resolved, error)

func (f ResolverFunc) Resolve(ctx context.Context, p *principal.Principal, r *http.Request) (*Resolved, error) {
	return f(ctx, p, r)
}

// ImpersonationPolicy decides whether an operator may act within a tenant's
// context. rbac.Authorizer satisfies it.
type ImpersonationPolicy interface {
	CanImpersonate(p *principal.Principal) bool
}

// resolver is the standard Resolver implementation covering the three
// supported flows:
//
//	member:                     membership -> tenant
//	operator, no target header: global access, no tenant
//	operator with target header: group check -> named tenant, impersonated
type resolver struct {
	tenants       Repository
	memberships   rbac.MembershipRepository
	impersonation ImpersonationPolicy
	header        string
	cache         Cache
	cacheTTL      time.Duration
}

// ResolverOption configures the standard resolver.
type ResolverOption func(*resolver)

// WithImpersonationHeader overrides the header naming the impersonation target.
func WithImpersonationHeader(name string) ResolverOption {
	return func(r *resolver) {
		if name != "" {
			r.header = name
		}
	}
}

// WithCache enables tenant lookup caching. Cached entries only short-circuit
// the repository read; activity and subscription checks still run on every
// request.
func WithCache(cache Cache) ResolverOption {
	return func(r *resolver) {
		r.cache = cache
	}
}

// WithCacheTTL sets how long cached tenant lookups stay valid.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *resolver) {
		if ttl > 0 {
			r.cacheTTL = ttl
		}
	}
}

// NewResolver creates the standard resolver.
func NewResolver(tenants Repository, memberships rbac.MembershipRepository, impersonation ImpersonationPolicy, opts ...ResolverOption) Resolver {
	r := &resolver{
		tenants:       tenants,
		memberships:   memberships,
		impersonation: impersonation,
		header:        DefaultImpersonationHeader,
		cache:         NewNoOpCache(),
		cacheTTL:      5 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *resolver) Resolve(ctx context.Context, p *principal.Principal, req *http.Request) (*Resolved, error) {
	if p.Operator {
		return r.resolveOperator(ctx, p, req)
	}
	return r.resolveMember(ctx, p)
}

// resolveOperator handles global staff. Without a target header the operator
// gets tenant-less global access. With one, group membership is verified
// before the target tenant is even loaded, so unauthorized operators learn
// nothing about which tenants exist.
func (r *resolver) resolveOperator(ctx context.Context, p *principal.Principal, req *http.Request) (*Resolved, error) {
	target := ""
	if req != nil {
		target = req.Header.Get(r.header)
	}
	if target == "" {
		return &Resolved{}, nil
	}

	if r.impersonation == nil || !r.impersonation.CanImpersonate(p) {
		return nil, ErrImpersonationNotAllowed
	}

	if len(target) > maxIdentifierLength || !identifierPattern.MatchString(target) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, target)
	}

	t, err := r.lookup(ctx, "target:"+target, func(ctx context.Context) (*Tenant, error) {
		return r.tenants.FindBySlugOrID(ctx, target)
	})
	if err != nil {
		return nil, err
	}
	return &Resolved{Tenant: t, Impersonated: true}, nil
}

// resolveMember binds a normal user to the tenant of its active membership.
func (r *resolver) resolveMember(ctx context.Context, p *principal.Principal) (*Resolved, error) {
	m, err := r.memberships.FindActive(ctx, p.ID)
	if err != nil {
		if errors.Is(err, rbac.ErrMembershipNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	t, err := r.lookup(ctx, "principal:"+p.ID.String(), func(ctx context.Context) (*Tenant, error) {
		return r.tenants.FindByPrincipal(ctx, p.ID)
	})
	if err != nil {
		return nil, err
	}
	return &Resolved{Tenant: t, Membership: m}, nil
}

// lookup reads through the cache.
func (r *resolver) lookup(ctx context.Context, key string, load func(ctx context.Context) (*Tenant, error)) (*Tenant, error) {
	if t, ok := r.cache.Get(ctx, key); ok {
		return t, nil
	}

	t, err := load(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, key, t, r.cacheTTL)
	return t, nil
}
