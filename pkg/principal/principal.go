package principal

import (
	"slices"

	"github.com/google/uuid"
)

// Principal is the authenticated identity acting on a request.
// It is immutable for the duration of the request; the authenticator
// builds it once and the pipeline only reads it.
type Principal struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Operator  bool      `json:"operator"`  // global staff, not bound to any tenant
	Superuser bool      `json:"superuser"` // passes every group check
	Groups    []string  `json:"groups"`
}

// BelongsTo reports whether the principal is a member of any of the named groups.
// It does not apply the superuser bypass; that is authorization policy and
// lives in rbac.InAnyGroup.
func (p *Principal) BelongsTo(groups ...string) bool {
	for _, g := range groups {
		if slices.Contains(p.Groups, g) {
			return true
		}
	}
	return false
}
