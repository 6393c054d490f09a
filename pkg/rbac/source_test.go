package rbac_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/rbac"
)

func TestFilePolicySource(t *testing.T) {
	t.Parallel()

	t.Run("loads policy from yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
role_permissions:
  admin: ["*"]
  staff: ["vehicles.read"]
global_view_roles: ["admin"]
impersonation_groups: ["support"]
`), 0o600))

		authz, err := rbac.NewAuthorizerFromSource(
			context.Background(),
			rbac.NewFilePolicySource(path),
			rbac.NewInMemMembershipRepository(),
		)
		require.NoError(t, err)
		require.NoError(t, authz.VerifyRole("staff"))
		assert.True(t, authz.HasGlobalView("admin"))
		assert.False(t, authz.HasGlobalView("staff"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := rbac.NewAuthorizerFromSource(
			context.Background(),
			rbac.NewFilePolicySource(filepath.Join(t.TempDir(), "nope.yaml")),
			rbac.NewInMemMembershipRepository(),
		)
		assert.ErrorIs(t, err, rbac.ErrFailedToLoadPolicy)
	})
}

func TestStaticPolicySourceIsolation(t *testing.T) {
	t.Parallel()

	policy := testPolicy()
	src := rbac.NewStaticPolicySource(policy)

	// Mutating the original must not affect what the source serves.
	policy.RolePermissions["staff"][0] = "everything.*"

	loaded, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"vehicles.read"}, loaded.RolePermissions["staff"])
}

func TestPolicyRoles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"admin", "manager", "staff"}, testPolicy().Roles())
}
