package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

// InMemRepository is a Repository backed by process memory, for tests and
// single-node tooling.
type InMemRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Tenant
	bySlug  map[string]*Tenant
	members rbac.MembershipRepository
}

// NewInMemRepository creates an in-memory tenant repository. The membership
// repository backs FindByPrincipal; it may be nil when only impersonation
// lookups are needed.
func NewInMemRepository(members rbac.MembershipRepository, tenants ...*Tenant) *InMemRepository {
	r := &InMemRepository{
		byID:    make(map[uuid.UUID]*Tenant, len(tenants)),
		bySlug:  make(map[string]*Tenant, len(tenants)),
		members: members,
	}
	for _, t := range tenants {
		r.Save(t)
	}
	return r
}

// Save adds or replaces a tenant.
func (r *InMemRepository) Save(t *Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.byID[cp.ID] = &cp
	if cp.Slug != "" {
		r.bySlug[cp.Slug] = &cp
	}
}

func (r *InMemRepository) FindByPrincipal(ctx context.Context, principalID uuid.UUID) (*Tenant, error) {
	if r.members == nil {
		return nil, ErrTenantNotFound
	}
	m, err := r.members.FindActive(ctx, principalID)
	if err != nil {
		return nil, ErrTenantNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[m.TenantID]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *InMemRepository) FindBySlugOrID(ctx context.Context, identifier string) (*Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.bySlug[identifier]; ok {
		cp := *t
		return &cp, nil
	}
	if id, err := uuid.Parse(identifier); err == nil {
		if t, ok := r.byID[id]; ok {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrTenantNotFound
}
