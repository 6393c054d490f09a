package rbac

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
)

// RequirePermission protects routes with a permission check against the
// authenticated principal's role. Requests without a principal in context
// receive a 401; requests without the permission receive a 403 naming the
// missing permission so clients can self-diagnose.
func (a *Authorizer) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principal.FromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}

			granted, err := a.HasPermission(r.Context(), p, permission)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if !granted {
				writeDenied(w, "missing permission: "+permission, permission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles restricts a route to principals holding one of the given
// tenant roles. Operators do not hold roles and are rejected here; use
// RequireGroups for operator-facing routes.
func (a *Authorizer) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principal.FromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}

			role, err := a.RoleOf(r.Context(), p)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if _, ok := allowed[role]; role == "" || !ok {
				writeDenied(w, "requires one of roles: "+strings.Join(roles, ", "), "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// RequireGroups restricts a route to operator principals belonging to one of
// the named groups. Superusers pass unconditionally.
func (a *Authorizer) RequireGroups(groups ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principal.FromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}

			if !a.InAnyGroup(p, groups...) {
				writeDenied(w, "requires one of groups: "+strings.Join(groups, ", "), "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthenticated reports a missing credential. A request that never
// authenticated gets a 401, not the 403 reserved for authenticated
// principals that lack access.
func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "authentication required",
		"code":  "unauthenticated",
	})
}

func writeDenied(w http.ResponseWriter, message, permission string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)

	body := map[string]string{"error": message}
	if permission != "" {
		body["permission"] = permission
	}
	_ = json.NewEncoder(w).Encode(body)
}
