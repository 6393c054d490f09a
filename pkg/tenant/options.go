package tenant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
	"github.com/dmitrymomot/tenantkit/pkg/subscription"
)

// ErrorHandler writes the HTTP response for a pipeline rejection.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	publicPaths   []string
	errorHandler  ErrorHandler
	logger        *slog.Logger
	requireActive bool
}

// Option configures the pipeline middleware.
type Option func(*config)

// WithPublicPaths sets path prefixes that bypass the pipeline entirely:
// no authentication, no tenant resolution, no tenant state in the context.
func WithPublicPaths(prefixes ...string) Option {
	return func(c *config) {
		c.publicPaths = append(c.publicPaths, prefixes...)
	}
}

// WithErrorHandler replaces the default JSON error responder.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithLogger sets the logger for pipeline rejections. By default rejections
// are not logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequireActive controls whether inactive tenants are rejected.
// Enabled by default; disable only for admin surfaces that must reach
// deactivated accounts.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	LimitKey string `json:"limit_key,omitempty"`
}

// DefaultErrorHandler maps pipeline errors to JSON responses:
//
//	401 unauthenticated           missing or invalid credential
//	404 tenant_not_found          unknown tenant, or a member without one
//	403 tenant_inactive           tenant deactivated
//	403 impersonation_not_allowed operator outside the permitted groups
//	403 plan_limit_exceeded       quota reached (includes limit_key)
//	403 permission_denied         role lacks the permission
//	402 subscription_expired      no current subscription
//	402 subscription_suspended    subscription suspended or cancelled
//
// Unknown errors become an opaque 500 so internal failures never leak
// repository details to the client.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: "internal error", Code: "internal_error"}

	var limitErr *subscription.LimitExceededError

	switch {
	case errors.Is(err, principal.ErrUnauthenticated),
		errors.Is(err, principal.ErrInvalidToken):
		status = http.StatusUnauthorized
		resp = errorResponse{Error: "authentication required", Code: "unauthenticated"}

	case errors.Is(err, ErrTenantNotFound):
		status = http.StatusNotFound
		resp = errorResponse{Error: "tenant not found", Code: "tenant_not_found"}

	case errors.Is(err, ErrInvalidIdentifier):
		status = http.StatusBadRequest
		resp = errorResponse{Error: "invalid tenant identifier", Code: "invalid_tenant_identifier"}

	case errors.Is(err, ErrTenantInactive):
		status = http.StatusForbidden
		resp = errorResponse{Error: "tenant is inactive", Code: "tenant_inactive"}

	case errors.Is(err, ErrImpersonationNotAllowed):
		status = http.StatusForbidden
		resp = errorResponse{Error: "impersonation not allowed", Code: "impersonation_not_allowed"}

	case errors.Is(err, ErrNoTenantInContext):
		status = http.StatusForbidden
		resp = errorResponse{Error: "tenant context required", Code: "tenant_required"}

	case errors.As(err, &limitErr):
		status = http.StatusForbidden
		resp = errorResponse{Error: "plan limit exceeded", Code: "plan_limit_exceeded", LimitKey: limitErr.Key}

	case errors.Is(err, subscription.ErrSubscriptionExpired):
		status = http.StatusPaymentRequired
		resp = errorResponse{Error: "subscription expired", Code: subscription.CodeExpired}

	case errors.Is(err, subscription.ErrSubscriptionSuspended):
		status = http.StatusPaymentRequired
		resp = errorResponse{Error: "subscription suspended", Code: subscription.CodeSuspended}

	case errors.Is(err, rbac.ErrPermissionDenied),
		errors.Is(err, rbac.ErrRoleRequired),
		errors.Is(err, rbac.ErrGroupRequired):
		status = http.StatusForbidden
		resp = errorResponse{Error: "permission denied", Code: "permission_denied"}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
