package principal

import "errors"

var (
	// ErrUnauthenticated is returned when a request carries no usable credential.
	ErrUnauthenticated = errors.New("principal: authentication required")

	// ErrInvalidToken is returned when the bearer token is malformed, expired,
	// or fails signature verification.
	ErrInvalidToken = errors.New("principal: invalid token")

	// ErrMissingSigningKey is returned when an authenticator is constructed
	// without a signing key.
	ErrMissingSigningKey = errors.New("principal: signing key is required")

	// ErrInvalidSubject is returned when the token subject is not a valid principal ID.
	ErrInvalidSubject = errors.New("principal: invalid token subject")
)
