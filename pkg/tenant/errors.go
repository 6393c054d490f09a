package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a principal has no tenant or an
	// impersonation target does not exist.
	ErrTenantNotFound = errors.New("tenant: not found")

	// ErrTenantInactive is returned when the tenant exists but is deactivated.
	ErrTenantInactive = errors.New("tenant: inactive")

	// ErrImpersonationNotAllowed is returned when an operator outside the
	// authorized groups attempts to impersonate a tenant.
	ErrImpersonationNotAllowed = errors.New("tenant: impersonation not allowed")

	// ErrNoTenantInContext is returned when a required tenant is missing
	// from the request context.
	ErrNoTenantInContext = errors.New("tenant: no tenant in context")

	// ErrInvalidIdentifier is returned when an impersonation target
	// identifier is malformed.
	ErrInvalidIdentifier = errors.New("tenant: invalid identifier")
)
