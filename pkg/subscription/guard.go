package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Guard enforces subscription validity and plan quotas for a tenant.
// It is stateless between calls: every check re-resolves the tenant's
// active subscription through the repository.
type Guard struct {
	repo     Repository
	counters CounterRegistry
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithCounters registers usage counters enabling CanCreate.
func WithCounters(counters CounterRegistry) GuardOption {
	return func(g *Guard) {
		g.counters = counters
	}
}

// NewGuard creates a subscription guard backed by the given repository.
func NewGuard(repo Repository, opts ...GuardOption) *Guard {
	g := &Guard{
		repo:     repo,
		counters: NewRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Verify checks that the tenant's subscription currently permits access.
func (g *Guard) Verify(ctx context.Context, tenantID uuid.UUID) error {
	return g.VerifyAt(ctx, tenantID, time.Now().UTC())
}

// VerifyAt is Verify evaluated at a fixed time, for deterministic tests.
//
// The check runs against the tenant's latest subscription row regardless of
// status: suspended or cancelled -> ErrSubscriptionSuspended; no history or
// end date passed -> ErrSubscriptionExpired. Status is checked before dates,
// so a suspended row with a past end date still reports suspended. A
// subscription ending today is still valid.
func (g *Guard) VerifyAt(ctx context.Context, tenantID uuid.UUID, now time.Time) error {
	sub, err := g.repo.LatestFor(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return ErrSubscriptionExpired
		}
		return err
	}

	switch sub.Status {
	case StatusSuspended, StatusCancelled:
		return ErrSubscriptionSuspended
	}

	if !sub.IsCurrentAt(now) {
		return ErrSubscriptionExpired
	}
	return nil
}

// CheckLimit verifies that creating one more resource under the given quota
// key stays within the tenant's plan. The caller supplies currentCount as
// the number of existing resources of that kind scoped to the tenant;
// counting is a collaborator responsibility.
//
// The quota is always read from the current active subscription's plan.
// An absent quota means unlimited and always passes.
func (g *Guard) CheckLimit(ctx context.Context, tenantID uuid.UUID, key string, currentCount int64) error {
	sub, err := g.repo.ActiveFor(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return ErrSubscriptionExpired
		}
		return err
	}

	plan, err := g.repo.PlanByID(ctx, sub.PlanID)
	if err != nil {
		return err
	}

	limit, ok := plan.Limit(key)
	if !ok {
		return nil // unlimited
	}

	if currentCount >= limit {
		return &LimitExceededError{Key: key, Limit: limit}
	}
	return nil
}

// CanCreate is CheckLimit with the current count supplied by a registered
// counter instead of the caller.
func (g *Guard) CanCreate(ctx context.Context, tenantID uuid.UUID, key string) error {
	counter, ok := g.counters[key]
	if !ok {
		return ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return err
	}
	return g.CheckLimit(ctx, tenantID, key, current)
}

// Usage returns the current usage and limit for a quota key.
// The limit is -1 when the plan places no limit on the key.
func (g *Guard) Usage(ctx context.Context, tenantID uuid.UUID, key string) (used, limit int64, err error) {
	sub, err := g.repo.ActiveFor(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return 0, 0, ErrSubscriptionExpired
		}
		return 0, 0, err
	}

	plan, err := g.repo.PlanByID(ctx, sub.PlanID)
	if err != nil {
		return 0, 0, err
	}

	limit = -1
	if v, ok := plan.Limit(key); ok {
		limit = v
	}

	counter, ok := g.counters[key]
	if !ok {
		return 0, limit, ErrNoCounterRegistered
	}
	used, err = counter(ctx, tenantID)
	if err != nil {
		return 0, limit, err
	}
	return used, limit, nil
}
