package rbac

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Membership relates a principal to a tenant, carrying the role that defines
// the principal's authority inside that tenant. A non-operator principal has
// at most one active membership; operators have none.
type Membership struct {
	ID           uuid.UUID  `json:"id"`
	PrincipalID  uuid.UUID  `json:"principal_id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	SubsidiaryID *uuid.UUID `json:"subsidiary_id,omitempty"` // optional sub-scope for record visibility
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MembershipRepository loads the active membership for a principal.
type MembershipRepository interface {
	// FindActive returns the principal's active membership.
	// Returns ErrMembershipNotFound when the principal has none.
	FindActive(ctx context.Context, principalID uuid.UUID) (*Membership, error)
}

// Policy is the deployment-supplied authorization configuration.
// It is constructed once at startup and treated as immutable afterwards;
// the authorizer deep-copies it so later mutation of the source maps
// cannot affect running checks.
type Policy struct {
	// RolePermissions maps a role name to the permission scopes it grants.
	// Scopes support wildcards (see the scopes package).
	RolePermissions map[string][]string `yaml:"role_permissions"`

	// GlobalViewRoles lists roles that see all tenant records,
	// bypassing subsidiary scoping.
	GlobalViewRoles []string `yaml:"global_view_roles"`

	// ImpersonationGroups lists operator groups allowed to act
	// within a tenant's context for support purposes.
	ImpersonationGroups []string `yaml:"impersonation_groups"`
}

// clone returns a deep copy of the policy.
func (p Policy) clone() Policy {
	perms := make(map[string][]string, len(p.RolePermissions))
	for role, scopes := range p.RolePermissions {
		perms[role] = slices.Clone(scopes)
	}
	return Policy{
		RolePermissions:     perms,
		GlobalViewRoles:     slices.Clone(p.GlobalViewRoles),
		ImpersonationGroups: slices.Clone(p.ImpersonationGroups),
	}
}

// Roles returns all role names known to the policy, sorted.
func (p Policy) Roles() []string {
	return slices.Sorted(maps.Keys(p.RolePermissions))
}
