package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMembershipRepository implements MembershipRepository on a pgx pool.
//
// Expected table:
//
//	CREATE TABLE memberships (
//		id             UUID PRIMARY KEY,
//		principal_id   UUID NOT NULL,
//		tenant_id      UUID NOT NULL,
//		subsidiary_id  UUID,
//		role           TEXT NOT NULL,
//		active         BOOLEAN NOT NULL DEFAULT TRUE,
//		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresMembershipRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMembershipRepository creates a membership repository backed by PostgreSQL.
func NewPostgresMembershipRepository(pool *pgxpool.Pool) *PostgresMembershipRepository {
	return &PostgresMembershipRepository{pool: pool}
}

// FindActive returns the principal's active membership.
func (r *PostgresMembershipRepository) FindActive(ctx context.Context, principalID uuid.UUID) (*Membership, error) {
	const query = `
		SELECT id, principal_id, tenant_id, subsidiary_id, role, active, created_at
		FROM memberships
		WHERE principal_id = $1 AND active
		ORDER BY created_at DESC
		LIMIT 1`

	var m Membership
	err := r.pool.QueryRow(ctx, query, principalID).Scan(
		&m.ID, &m.PrincipalID, &m.TenantID, &m.SubsidiaryID, &m.Role, &m.Active, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("find active membership: %w", err)
	}
	return &m, nil
}
