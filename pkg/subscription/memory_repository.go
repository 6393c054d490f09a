package subscription

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// inMemRepository is a thread-safe Repository keeping full subscription
// history in memory. Intended for tests and single-process deployments.
type inMemRepository struct {
	mu    sync.RWMutex
	plans map[string]Plan
	subs  map[uuid.UUID][]*Subscription // history per tenant
}

// NewInMemRepository builds a repository from a plan source and an optional
// initial subscription history.
func NewInMemRepository(ctx context.Context, src Source, subs ...*Subscription) (Repository, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	r := &inMemRepository{
		plans: plans,
		subs:  make(map[uuid.UUID][]*Subscription),
	}
	for _, s := range subs {
		r.add(s)
	}
	return r, nil
}

func (r *inMemRepository) add(s *Subscription) {
	if s == nil {
		return
	}
	c := *s
	r.subs[s.TenantID] = append(r.subs[s.TenantID], &c)
}

// Save appends or replaces a subscription row, keeping history.
func (r *inMemRepository) Save(ctx context.Context, s *Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.subs[s.TenantID] {
		if existing.ID == s.ID {
			c := *s
			r.subs[s.TenantID][i] = &c
			return nil
		}
	}
	r.add(s)
	return nil
}

// ActiveFor returns the most recently started subscription with active status.
func (r *inMemRepository) ActiveFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Subscription
	for _, s := range r.subs[tenantID] {
		if s.Status != StatusActive {
			continue
		}
		if latest == nil || s.StartDate.After(latest.StartDate) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrSubscriptionNotFound
	}
	c := *latest
	return &c, nil
}

// LatestFor returns the most recently started subscription of any status.
func (r *inMemRepository) LatestFor(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Subscription
	for _, s := range r.subs[tenantID] {
		if latest == nil || s.StartDate.After(latest.StartDate) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrSubscriptionNotFound
	}
	c := *latest
	return &c, nil
}

func (r *inMemRepository) PlanByID(ctx context.Context, planID string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return &plan, nil
}
