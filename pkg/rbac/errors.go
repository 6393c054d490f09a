package rbac

import "errors"

var (
	// ErrMembershipNotFound is returned when a principal has no active membership.
	ErrMembershipNotFound = errors.New("rbac: membership not found")

	// ErrInvalidRole is returned when a role is not present in the policy.
	ErrInvalidRole = errors.New("rbac: invalid role")

	// ErrPermissionDenied is returned when the principal's role does not grant
	// a required permission.
	ErrPermissionDenied = errors.New("rbac: permission denied")

	// ErrRoleRequired is returned when an action is restricted to specific roles
	// the principal does not hold.
	ErrRoleRequired = errors.New("rbac: role required")

	// ErrGroupRequired is returned when an action is restricted to operator
	// groups the principal does not belong to.
	ErrGroupRequired = errors.New("rbac: group required")

	// ErrFailedToLoadPolicy is returned when a policy source cannot be read.
	ErrFailedToLoadPolicy = errors.New("rbac: failed to load policy")
)
