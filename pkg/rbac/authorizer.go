package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
	"github.com/dmitrymomot/tenantkit/pkg/scopes"
)

// Scope describes how much of a tenant's data a principal may see.
// The zero value grants nothing (fail closed).
type Scope struct {
	// All grants visibility over every record in the tenant.
	All bool
	// SubsidiaryID limits visibility to a single subsidiary when set.
	SubsidiaryID *uuid.UUID
}

// None reports whether the scope grants no visibility at all.
func (s Scope) None() bool {
	return !s.All && s.SubsidiaryID == nil
}

// Authorizer answers role, permission and group queries against an immutable
// policy. Construct it once at startup; all methods are safe for concurrent
// use because the policy maps are never mutated after construction.
type Authorizer struct {
	rolePermissions map[string][]string
	globalView      map[string]struct{}
	impersonation   map[string]struct{}
	memberships     MembershipRepository
}

// NewAuthorizer builds an authorizer from a policy and a membership repository.
// Permission lists are normalized up front so runtime checks stay allocation-free.
func NewAuthorizer(policy Policy, memberships MembershipRepository) (*Authorizer, error) {
	if memberships == nil {
		return nil, errors.New("rbac: membership repository is required")
	}

	policy = policy.clone()

	rolePermissions := make(map[string][]string, len(policy.RolePermissions))
	for role, perms := range policy.RolePermissions {
		rolePermissions[role] = scopes.Normalize(perms)
	}

	globalView := make(map[string]struct{}, len(policy.GlobalViewRoles))
	for _, role := range policy.GlobalViewRoles {
		globalView[role] = struct{}{}
	}

	impersonation := make(map[string]struct{}, len(policy.ImpersonationGroups))
	for _, group := range policy.ImpersonationGroups {
		impersonation[group] = struct{}{}
	}

	return &Authorizer{
		rolePermissions: rolePermissions,
		globalView:      globalView,
		impersonation:   impersonation,
		memberships:     memberships,
	}, nil
}

// RoleOf returns the principal's role within its tenant.
// Operators have no membership role; their authority comes from groups,
// so the result is empty for them. An empty role with a nil error means
// "no role" and must be treated as denying everything.
func (a *Authorizer) RoleOf(ctx context.Context, p *principal.Principal) (string, error) {
	m, err := a.membershipOf(ctx, p)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.Role, nil
}

// SubsidiaryOf returns the subsidiary on the principal's active membership,
// or nil when the principal has none assigned.
func (a *Authorizer) SubsidiaryOf(ctx context.Context, p *principal.Principal) (*uuid.UUID, error) {
	m, err := a.membershipOf(ctx, p)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return m.SubsidiaryID, nil
}

// HasPermission reports whether the principal's role grants the permission.
// Principals without a role never have permissions.
func (a *Authorizer) HasPermission(ctx context.Context, p *principal.Principal, permission string) (bool, error) {
	role, err := a.RoleOf(ctx, p)
	if err != nil {
		return false, err
	}
	if role == "" {
		return false, nil
	}
	return scopes.Has(a.rolePermissions[role], permission), nil
}

// Can returns an error naming the missing permission when the principal's
// role does not grant it. Intended for guard-style call sites.
func (a *Authorizer) Can(ctx context.Context, p *principal.Principal, permission string) error {
	ok, err := a.HasPermission(ctx, p, permission)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, permission)
	}
	return nil
}

// HasGlobalView reports whether the role sees all tenant records,
// bypassing subsidiary scoping.
func (a *Authorizer) HasGlobalView(role string) bool {
	_, ok := a.globalView[role]
	return ok
}

// InAnyGroup reports whether the principal belongs to any of the named groups.
// Superusers pass unconditionally.
func (a *Authorizer) InAnyGroup(p *principal.Principal, groups ...string) bool {
	if p == nil {
		return false
	}
	if p.Superuser {
		return true
	}
	return p.BelongsTo(groups...)
}

// CanImpersonate reports whether an operator may act within a tenant's
// context. Non-operators can never impersonate regardless of groups.
func (a *Authorizer) CanImpersonate(p *principal.Principal) bool {
	if p == nil || !p.Operator {
		return false
	}
	if p.Superuser {
		return true
	}
	for _, g := range p.Groups {
		if _, ok := a.impersonation[g]; ok {
			return true
		}
	}
	return false
}

// VerifyRole returns ErrInvalidRole if the role is unknown to the policy.
func (a *Authorizer) VerifyRole(role string) error {
	if _, ok := a.rolePermissions[role]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	return nil
}

// ScopeFor resolves the data-access scope for a principal:
// operators see everything, global-view roles see all tenant records,
// everyone else sees only their own subsidiary. A principal with no
// resolvable subsidiary sees nothing.
func (a *Authorizer) ScopeFor(ctx context.Context, p *principal.Principal) (Scope, error) {
	if p == nil {
		return Scope{}, nil
	}
	if p.Operator {
		return Scope{All: true}, nil
	}

	m, err := a.membershipOf(ctx, p)
	if err != nil {
		return Scope{}, err
	}
	if m == nil {
		return Scope{}, nil
	}

	if a.HasGlobalView(m.Role) {
		return Scope{All: true}, nil
	}
	if m.SubsidiaryID != nil {
		return Scope{SubsidiaryID: m.SubsidiaryID}, nil
	}
	return Scope{}, nil
}

// membershipOf loads the principal's active membership, preferring the
// request-scoped copy the pipeline stored in the context. Absence is not an
// error here; callers decide what "no membership" means.
func (a *Authorizer) membershipOf(ctx context.Context, p *principal.Principal) (*Membership, error) {
	if p == nil || p.Operator {
		return nil, nil
	}

	if m, ok := MembershipFromContext(ctx); ok && m.PrincipalID == p.ID {
		return m, nil
	}

	m, err := a.memberships.FindActive(ctx, p.ID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}
