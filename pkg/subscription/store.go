package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Repository loads subscription and plan data. The guard calls it on every
// check so quota decisions always reflect the current active subscription,
// never a cached one.
type Repository interface {
	// ActiveFor returns the tenant's active subscription: the most recently
	// started row whose status is StatusActive.
	// Returns ErrSubscriptionNotFound when the tenant has none.
	ActiveFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// LatestFor returns the tenant's most recently started subscription
	// regardless of status, so the guard can distinguish a suspended
	// account from one that never subscribed.
	// Returns ErrSubscriptionNotFound when the tenant has no history.
	LatestFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// PlanByID returns the plan definition for a subscription's plan reference.
	// Returns ErrPlanNotFound for unknown plans.
	PlanByID(ctx context.Context, planID string) (*Plan, error)
}

// CounterFunc returns the current usage for a tenant's quota key.
// Should be fast: cache or aggregate at repository level.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// CounterRegistry maps a quota key to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[string]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for a quota key. Panics if fn is nil.
func (r CounterRegistry) Register(key string, fn CounterFunc) {
	if fn == nil {
		panic("subscription: CounterFunc for " + key + " cannot be nil")
	}
	r[key] = fn
}
