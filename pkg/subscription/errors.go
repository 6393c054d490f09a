package subscription

import (
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionNotFound is returned by repositories when a tenant has
	// no active subscription row.
	ErrSubscriptionNotFound = errors.New("subscription: not found")

	// ErrSubscriptionExpired is returned when a tenant has no active
	// subscription or its end date has passed.
	ErrSubscriptionExpired = errors.New("subscription: expired")

	// ErrSubscriptionSuspended is returned when the subscription is
	// suspended or cancelled.
	ErrSubscriptionSuspended = errors.New("subscription: suspended")

	// ErrPlanLimitExceeded is returned when creating a resource would exceed
	// the plan quota. Use errors.As with *LimitExceededError to read the key.
	ErrPlanLimitExceeded = errors.New("subscription: plan limit exceeded")

	// ErrPlanNotFound is returned when a subscription references an unknown plan.
	ErrPlanNotFound = errors.New("subscription: plan not found")

	// ErrNoCounterRegistered is returned by CanCreate when no usage counter
	// exists for the requested quota key.
	ErrNoCounterRegistered = errors.New("subscription: no counter registered")

	// ErrFailedToLoadPlans is returned when a plan source cannot be read.
	ErrFailedToLoadPlans = errors.New("subscription: failed to load plans")
)

// Machine-readable codes surfaced to clients so UIs can redirect to billing.
const (
	CodeExpired   = "subscription_expired"
	CodeSuspended = "subscription_suspended"
)

// LimitExceededError carries the offending quota key and its limit so
// clients can present a targeted upgrade prompt.
type LimitExceededError struct {
	Key   string
	Limit int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("subscription: plan limit of %d reached for %q", e.Limit, e.Key)
}

// Unwrap makes errors.Is(err, ErrPlanLimitExceeded) hold.
func (e *LimitExceededError) Unwrap() error {
	return ErrPlanLimitExceeded
}
