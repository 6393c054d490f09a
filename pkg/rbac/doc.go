// Package rbac provides role-based authorization for multi-tenant
// applications: role and permission resolution from tenant memberships,
// operator group checks, and record-visibility scoping.
//
// Authorization rules come from a single immutable Policy constructed at
// startup. The Authorizer precomputes normalized permission sets so runtime
// checks never touch shared mutable state and are safe for unsynchronized
// concurrent use.
//
//	policy := rbac.Policy{
//		RolePermissions: map[string][]string{
//			"admin": {"*"},
//			"staff": {"vehicles.read", "vehicles.create"},
//		},
//		GlobalViewRoles:     []string{"admin", "manager"},
//		ImpersonationGroups: []string{"support"},
//	}
//	authz, err := rbac.NewAuthorizer(policy, membershipRepo)
//
// Data-access scoping for downstream queries follows a fail-closed rule:
// operators see everything, global-view roles see the whole tenant, everyone
// else sees only their own subsidiary, and a principal with no resolvable
// subsidiary sees nothing.
//
//	scope, err := authz.ScopeFor(ctx, p)
//	switch {
//	case scope.All:
//		// no visibility filter
//	case scope.SubsidiaryID != nil:
//		// filter records by *scope.SubsidiaryID
//	default:
//		// return an empty result set
//	}
package rbac
