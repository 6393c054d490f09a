package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on a pgx pool.
//
// Expected tables:
//
//	CREATE TABLE plans (
//		id          TEXT PRIMARY KEY,
//		name        TEXT NOT NULL,
//		description TEXT NOT NULL DEFAULT '',
//		max_users   BIGINT,
//		max_records BIGINT,
//		quotas      JSONB NOT NULL DEFAULT '{}',
//		active      BOOLEAN NOT NULL DEFAULT TRUE
//	);
//
//	CREATE TABLE subscriptions (
//		id         UUID PRIMARY KEY,
//		tenant_id  UUID NOT NULL,
//		plan_id    TEXT NOT NULL REFERENCES plans (id),
//		start_date DATE NOT NULL,
//		end_date   DATE NOT NULL,
//		status     TEXT NOT NULL,
//		auto_renew BOOLEAN NOT NULL DEFAULT TRUE,
//		notes      TEXT NOT NULL DEFAULT '',
//		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a subscription repository backed by PostgreSQL.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ActiveFor returns the tenant's most recently started active subscription.
func (r *PostgresRepository) ActiveFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	const query = `
		SELECT id, tenant_id, plan_id, start_date, end_date, status, auto_renew, notes, created_at, updated_at
		FROM subscriptions
		WHERE tenant_id = $1 AND status = $2
		ORDER BY start_date DESC
		LIMIT 1`

	var s Subscription
	err := r.pool.QueryRow(ctx, query, tenantID, StatusActive).Scan(
		&s.ID, &s.TenantID, &s.PlanID, &s.StartDate, &s.EndDate,
		&s.Status, &s.AutoRenew, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("active subscription for tenant: %w", err)
	}
	return &s, nil
}

// LatestFor returns the tenant's most recently started subscription of any status.
func (r *PostgresRepository) LatestFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	const query = `
		SELECT id, tenant_id, plan_id, start_date, end_date, status, auto_renew, notes, created_at, updated_at
		FROM subscriptions
		WHERE tenant_id = $1
		ORDER BY start_date DESC
		LIMIT 1`

	var s Subscription
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.PlanID, &s.StartDate, &s.EndDate,
		&s.Status, &s.AutoRenew, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("latest subscription for tenant: %w", err)
	}
	return &s, nil
}

// PlanByID returns the plan definition for a plan reference.
func (r *PostgresRepository) PlanByID(ctx context.Context, planID string) (*Plan, error) {
	const query = `
		SELECT id, name, description, max_users, max_records, quotas, active
		FROM plans
		WHERE id = $1`

	var (
		p      Plan
		quotas []byte
	)
	err := r.pool.QueryRow(ctx, query, planID).Scan(
		&p.ID, &p.Name, &p.Description, &p.MaxUsers, &p.MaxRecords, &quotas, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("plan by id: %w", err)
	}

	if len(quotas) > 0 {
		if err := json.Unmarshal(quotas, &p.Quotas); err != nil {
			return nil, fmt.Errorf("decode plan quotas: %w", err)
		}
	}
	return &p, nil
}
