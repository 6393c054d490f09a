package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository backed by pgx. Expected schema:
//
//	CREATE TABLE tenants (
//	    id         UUID PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    slug       TEXT NOT NULL UNIQUE,
//	    is_active  BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
// FindByPrincipal joins through the memberships table (see rbac.PostgresMembershipRepository).
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// The tenants flag column is is_active; the memberships flag column, owned
// by the rbac schema, is active.
const (
	tenantByPrincipalQuery = `
		SELECT t.id, t.name, t.slug, t.is_active, t.created_at
		FROM tenants t
		JOIN memberships m ON m.tenant_id = t.id
		WHERE m.principal_id = $1 AND m.active = TRUE
		ORDER BY m.created_at DESC
		LIMIT 1`

	tenantBySlugOrIDQuery = `
		SELECT id, name, slug, is_active, created_at
		FROM tenants
		WHERE slug = $1 OR id = $2
		LIMIT 1`
)

// NewPostgresRepository creates a Postgres-backed tenant repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) FindByPrincipal(ctx context.Context, principalID uuid.UUID) (*Tenant, error) {
	var t Tenant
	err := r.pool.QueryRow(ctx, tenantByPrincipalQuery, principalID).Scan(&t.ID, &t.Name, &t.Slug, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant for principal %s: %w", principalID, err)
	}
	return &t, nil
}

func (r *PostgresRepository) FindBySlugOrID(ctx context.Context, identifier string) (*Tenant, error) {
	// A non-UUID identifier still matches on slug; the nil UUID never
	// collides with a real tenant ID.
	id, err := uuid.Parse(identifier)
	if err != nil {
		id = uuid.Nil
	}

	var t Tenant
	err = r.pool.QueryRow(ctx, tenantBySlugOrIDQuery, identifier, id).Scan(&t.ID, &t.Name, &t.Slug, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %q: %w", identifier, err)
	}
	return &t, nil
}
