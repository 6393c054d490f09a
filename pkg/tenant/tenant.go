package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a customer organization with the minimal information
// needed for request-scoped operations. Tenants are deactivated, never
// hard-deleted; the pipeline rejects inactive tenants.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository loads tenant records. Both lookups are point reads; the
// pipeline performs at most one of them per request.
type Repository interface {
	// FindByPrincipal returns the tenant owning the principal's active
	// membership. Returns ErrTenantNotFound when the principal has none.
	FindByPrincipal(ctx context.Context, principalID uuid.UUID) (*Tenant, error)

	// FindBySlugOrID returns a tenant by its slug or its UUID string.
	// Used by the impersonation branch where operators name a target tenant.
	// Returns ErrTenantNotFound if no tenant matches.
	FindBySlugOrID(ctx context.Context, identifier string) (*Tenant, error)
}
