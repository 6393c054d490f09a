package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a subscription.
// Transitions are driven by external billing processes; this package only
// reads the status.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// Subscription is one entry in a tenant's subscription history.
// The "active subscription" of a tenant is the most recently started row
// whose status is StatusActive; the repository's ActiveFor method encodes
// that rule.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	PlanID    string    `json:"plan_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    Status    `json:"status"`
	AutoRenew bool      `json:"auto_renew"`
	Notes     string    `json:"-"` // internal admin notes, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCurrentAt reports whether the subscription grants access at the given
// time: status is active and the end date has not passed. The end date is
// inclusive: a subscription ending today is still current.
func (s *Subscription) IsCurrentAt(now time.Time) bool {
	return s.Status == StatusActive && !dateOnly(s.EndDate).Before(dateOnly(now))
}

// IsCurrent reports whether the subscription grants access right now.
func (s *Subscription) IsCurrent() bool {
	return s.IsCurrentAt(time.Now().UTC())
}

// DaysRemainingAt returns the number of whole days until the end date at the
// given time, never negative. Useful for renewal banners.
func (s *Subscription) DaysRemainingAt(now time.Time) int {
	days := int(dateOnly(s.EndDate).Sub(dateOnly(now)).Hours() / 24)
	return max(days, 0)
}

// DaysRemaining returns the number of whole days until the end date.
func (s *Subscription) DaysRemaining() int {
	return s.DaysRemainingAt(time.Now().UTC())
}

// dateOnly truncates a timestamp to its UTC calendar date. Subscription
// validity is defined at date granularity, not instant granularity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
