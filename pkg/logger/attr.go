package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// TenantID records the tenant identifier under the key "tenant_id".
// If id is nil, it returns an empty Attr.
func TenantID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("tenant_id", id)
}

// PrincipalID records the acting principal under the key "principal_id".
// If id is nil, it returns an empty Attr.
func PrincipalID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("principal_id", id)
}

// Role records a role name under the key "role".
func Role(role string) slog.Attr {
	return slog.String("role", role)
}

// Permission records the checked permission under the key "permission".
func Permission(name string) slog.Attr {
	return slog.String("permission", name)
}

// Impersonated marks a record as produced under operator impersonation.
func Impersonated() slog.Attr {
	return slog.Bool("impersonated", true)
}

// Plan records a subscription plan identifier under the key "plan_id".
func Plan(id string) slog.Attr {
	return slog.String("plan_id", id)
}

// LimitKey records a quota key under the key "limit_key".
func LimitKey(key string) slog.Attr {
	return slog.String("limit_key", key)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
