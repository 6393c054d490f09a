package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
)

func doRequest(t *testing.T, mw func(http.Handler) http.Handler, p *principal.Principal) *httptest.ResponseRecorder {
	t.Helper()

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	if p != nil {
		r = r.WithContext(principal.WithPrincipal(r.Context(), p))
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	p, m := member("staff", nil)
	authz := newAuthorizer(t, m)

	t.Run("granted", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequirePermission("vehicles.read"), p)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied names the permission", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequirePermission("vehicles.delete"), p)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "vehicles.delete")
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequirePermission("vehicles.read"), nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthenticated")
	})
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	p, m := member("manager", nil)
	authz := newAuthorizer(t, m)

	t.Run("holding role passes", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireRoles("admin", "manager"), p)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other roles rejected", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireRoles("admin"), p)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("operators hold no roles", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireRoles("admin"), &principal.Principal{Operator: true, Superuser: true})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireRoles("admin"), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireGroups(t *testing.T) {
	t.Parallel()

	authz := newAuthorizer(t)

	t.Run("group member passes", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireGroups("support"), &principal.Principal{Groups: []string{"support"}})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("superuser passes any group", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireGroups("support"), &principal.Principal{Superuser: true})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("outsider rejected", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireGroups("support"), &principal.Principal{Groups: []string{"sales"}})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing principal gets 401", func(t *testing.T) {
		t.Parallel()
		w := doRequest(t, authz.RequireGroups("support"), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
