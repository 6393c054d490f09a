package rbac_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

func testPolicy() rbac.Policy {
	return rbac.Policy{
		RolePermissions: map[string][]string{
			"admin":   {"*"},
			"manager": {"vehicles.*", "drivers.read"},
			"staff":   {"vehicles.read"},
		},
		GlobalViewRoles:     []string{"admin", "manager"},
		ImpersonationGroups: []string{"support"},
	}
}

func member(role string, subsidiary *uuid.UUID) (*principal.Principal, *rbac.Membership) {
	p := &principal.Principal{ID: uuid.New()}
	m := &rbac.Membership{
		ID:           uuid.New(),
		PrincipalID:  p.ID,
		TenantID:     uuid.New(),
		SubsidiaryID: subsidiary,
		Role:         role,
		Active:       true,
	}
	return p, m
}

func newAuthorizer(t *testing.T, memberships ...*rbac.Membership) *rbac.Authorizer {
	t.Helper()
	authz, err := rbac.NewAuthorizer(testPolicy(), rbac.NewInMemMembershipRepository(memberships...))
	require.NoError(t, err)
	return authz
}

func TestNewAuthorizer(t *testing.T) {
	t.Parallel()

	_, err := rbac.NewAuthorizer(testPolicy(), nil)
	assert.Error(t, err)
}

func TestRoleOf(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("member role comes from active membership", func(t *testing.T) {
		t.Parallel()
		p, m := member("staff", nil)
		authz := newAuthorizer(t, m)

		role, err := authz.RoleOf(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "staff", role)
	})

	t.Run("operator has no role", func(t *testing.T) {
		t.Parallel()
		authz := newAuthorizer(t)
		role, err := authz.RoleOf(ctx, &principal.Principal{ID: uuid.New(), Operator: true})
		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("no membership means no role, not an error", func(t *testing.T) {
		t.Parallel()
		authz := newAuthorizer(t)
		role, err := authz.RoleOf(ctx, &principal.Principal{ID: uuid.New()})
		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("context membership short-circuits the repository", func(t *testing.T) {
		t.Parallel()
		p, m := member("manager", nil)
		// Repository is empty on purpose: the role must come from the context.
		authz := newAuthorizer(t)

		role, err := authz.RoleOf(rbac.WithMembership(ctx, m), p)
		require.NoError(t, err)
		assert.Equal(t, "manager", role)
	})
}

func TestHasPermission(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("wildcard role has every permission", func(t *testing.T) {
		t.Parallel()
		p, m := member("admin", nil)
		authz := newAuthorizer(t, m)

		ok, err := authz.HasPermission(ctx, p, "anything.delete")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("namespace wildcard", func(t *testing.T) {
		t.Parallel()
		p, m := member("manager", nil)
		authz := newAuthorizer(t, m)

		ok, err := authz.HasPermission(ctx, p, "vehicles.delete")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = authz.HasPermission(ctx, p, "drivers.delete")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no role denies everything", func(t *testing.T) {
		t.Parallel()
		authz := newAuthorizer(t)
		ok, err := authz.HasPermission(ctx, &principal.Principal{ID: uuid.New()}, "vehicles.read")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p, m := member("staff", nil)
	authz := newAuthorizer(t, m)

	require.NoError(t, authz.Can(ctx, p, "vehicles.read"))

	err := authz.Can(ctx, p, "vehicles.delete")
	require.ErrorIs(t, err, rbac.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "vehicles.delete")
}

func TestCanImpersonate(t *testing.T) {
	t.Parallel()

	authz := newAuthorizer(t)

	tests := []struct {
		name string
		p    *principal.Principal
		want bool
	}{
		{"operator in impersonation group", &principal.Principal{Operator: true, Groups: []string{"support"}}, true},
		{"operator superuser bypasses groups", &principal.Principal{Operator: true, Superuser: true}, true},
		{"operator outside groups", &principal.Principal{Operator: true, Groups: []string{"sales"}}, false},
		{"member in group is still not an operator", &principal.Principal{Groups: []string{"support"}}, false},
		{"nil principal", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, authz.CanImpersonate(tt.p))
		})
	}
}

func TestInAnyGroup(t *testing.T) {
	t.Parallel()

	authz := newAuthorizer(t)

	assert.True(t, authz.InAnyGroup(&principal.Principal{Groups: []string{"support"}}, "support"))
	assert.True(t, authz.InAnyGroup(&principal.Principal{Superuser: true}, "anything"))
	assert.False(t, authz.InAnyGroup(&principal.Principal{}, "support"))
	assert.False(t, authz.InAnyGroup(nil, "support"))
}

func TestVerifyRole(t *testing.T) {
	t.Parallel()

	authz := newAuthorizer(t)
	require.NoError(t, authz.VerifyRole("admin"))
	assert.ErrorIs(t, authz.VerifyRole("ghost"), rbac.ErrInvalidRole)
}

func TestScopeFor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	subID := uuid.New()

	t.Run("operator sees everything", func(t *testing.T) {
		t.Parallel()
		authz := newAuthorizer(t)
		scope, err := authz.ScopeFor(ctx, &principal.Principal{ID: uuid.New(), Operator: true})
		require.NoError(t, err)
		assert.True(t, scope.All)
	})

	t.Run("global view role sees the whole tenant", func(t *testing.T) {
		t.Parallel()
		p, m := member("manager", &subID)
		authz := newAuthorizer(t, m)

		scope, err := authz.ScopeFor(ctx, p)
		require.NoError(t, err)
		assert.True(t, scope.All)
		assert.Nil(t, scope.SubsidiaryID)
	})

	t.Run("regular role limited to its subsidiary", func(t *testing.T) {
		t.Parallel()
		p, m := member("staff", &subID)
		authz := newAuthorizer(t, m)

		scope, err := authz.ScopeFor(ctx, p)
		require.NoError(t, err)
		assert.False(t, scope.All)
		require.NotNil(t, scope.SubsidiaryID)
		assert.Equal(t, subID, *scope.SubsidiaryID)
	})

	t.Run("no subsidiary fails closed", func(t *testing.T) {
		t.Parallel()
		p, m := member("staff", nil)
		authz := newAuthorizer(t, m)

		scope, err := authz.ScopeFor(ctx, p)
		require.NoError(t, err)
		assert.True(t, scope.None())
	})

	t.Run("no membership fails closed", func(t *testing.T) {
		t.Parallel()
		authz := newAuthorizer(t)
		scope, err := authz.ScopeFor(ctx, &principal.Principal{ID: uuid.New()})
		require.NoError(t, err)
		assert.True(t, scope.None())
	})
}
