package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

func TestCreateRoleValidation(t *testing.T) {
	s := testStore(t)

	t.Run("valid role persists and audits", func(t *testing.T) {
		role := seedEngineerRole(t, s)
		assert.NotZero(t, role.ID)
		assert.Equal(t, int64(1), auditCount(t, s, "ROLE_CREATE"))
	})

	t.Run("unknown document type rejected", func(t *testing.T) {
		_, err := s.CreateRole("admin", RoleInput{
			Name:             "weird",
			AllowedDocuments: []string{"blueprints_v2"},
		})
		require.ErrorIs(t, err, ErrInvalidPermission)
	})

	t.Run("unknown scope rejected", func(t *testing.T) {
		_, err := s.CreateRole("admin", RoleInput{
			Name:       "weird",
			DataAccess: []string{"cosmic"},
		})
		require.ErrorIs(t, err, ErrInvalidPermission)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		_, err := s.CreateRole("admin", RoleInput{
			Name:    "weird",
			Actions: []string{"transmogrify"},
		})
		require.ErrorIs(t, err, ErrInvalidPermission)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := s.CreateRole("admin", RoleInput{Name: "engineer"})
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejected role not persisted", func(t *testing.T) {
		var n int64
		require.NoError(t, s.DB.Model(&models.Role{}).Where("name = ?", "weird").Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestUpdateRoleRevalidatesAndPropagates(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)

	_, err := s.UpdateRole("admin", "engineer", RoleInput{
		Description: "widened",
		DataAccess:  []string{"technical", "operational", "commercial"},
		Actions:     []string{"read", "edit", "export"},
	})
	require.NoError(t, err)

	t.Run("invalid update rejected verbatim", func(t *testing.T) {
		_, err := s.UpdateRole("admin", "engineer", RoleInput{DataAccess: []string{"cosmic"}})
		require.ErrorIs(t, err, ErrInvalidPermission)
	})

	t.Run("missing role is NotFound", func(t *testing.T) {
		_, err := s.UpdateRole("admin", "nobody", RoleInput{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("next subject resolution sees the new set", func(t *testing.T) {
		u, err := s.CreateUser("admin", UserInput{
			Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "engineer",
			Projects: []string{authz.ProjectsAll},
		})
		require.NoError(t, err)
		sub, err := s.SubjectFor(u)
		require.NoError(t, err)
		mask := authz.ExpandScopes(s.Catalog, sub.DataAccess)
		assert.True(t, mask.Has(authz.ScopeCommercial))
	})
}

func TestDeleteRoleInUse(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	u, err := s.CreateUser("admin", UserInput{
		Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "engineer",
		Projects: []string{authz.ProjectsAll},
	})
	require.NoError(t, err)

	t.Run("referenced by active user fails", func(t *testing.T) {
		require.ErrorIs(t, s.DeleteRole("admin", "engineer"), ErrRoleInUse)
	})

	t.Run("succeeds after reassignment", func(t *testing.T) {
		_, err := s.CreateRole("admin", RoleInput{Name: "viewer", Actions: []string{"read"}})
		require.NoError(t, err)
		role := "viewer"
		_, err = s.UpdateUser("admin", u.ID, UserPatch{Role: &role})
		require.NoError(t, err)
		require.NoError(t, s.DeleteRole("admin", "engineer"))
		_, err = s.GetRole("engineer")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetRoleNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.GetRole("ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

// Audit completeness is a guarantee: when the audit insert cannot happen,
// the mutation itself must fail and leave nothing behind.
func TestMutationFailsWhenAuditUnavailable(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.DB.Migrator().DropTable(&models.AuditLog{}))

	_, err := s.CreateRole("admin", RoleInput{Name: "engineer"})
	require.ErrorIs(t, err, ErrAuditWriteFailed)

	var n int64
	require.NoError(t, s.DB.Model(&models.Role{}).Count(&n).Error)
	assert.Zero(t, n, "role must not persist without its audit entry")
}
