package rbac

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// inMemMembershipRepository is a thread-safe MembershipRepository backed by a
// map. Intended for tests and single-process deployments.
type inMemMembershipRepository struct {
	mu          sync.RWMutex
	memberships map[uuid.UUID]*Membership // keyed by principal ID
}

// NewInMemMembershipRepository creates an in-memory membership repository.
// Only active memberships are stored; one per principal.
func NewInMemMembershipRepository(memberships ...*Membership) MembershipRepository {
	byPrincipal := make(map[uuid.UUID]*Membership, len(memberships))
	for _, m := range memberships {
		if m != nil && m.Active {
			c := *m
			byPrincipal[m.PrincipalID] = &c
		}
	}
	return &inMemMembershipRepository{memberships: byPrincipal}
}

func (r *inMemMembershipRepository) FindActive(ctx context.Context, principalID uuid.UUID) (*Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[principalID]
	if !ok || !m.Active {
		return nil, ErrMembershipNotFound
	}
	c := *m
	return &c, nil
}
