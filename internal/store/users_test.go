package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

func TestCreateUser(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	seedProject(t, s, "P1")

	t.Run("requires existing role", func(t *testing.T) {
		_, err := s.CreateUser("admin", UserInput{
			Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "ghost",
		})
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("projects validated against registry", func(t *testing.T) {
		_, err := s.CreateUser("admin", UserInput{
			Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "engineer",
			Projects: []string{"P1", "P9"},
		})
		require.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("all sentinel bypasses project validation", func(t *testing.T) {
		u, err := s.CreateUser("admin", UserInput{
			Name: "Ahmed", Email: "Ahmed@Example.com", Password: "pw", Role: "engineer",
			Projects: []string{authz.ProjectsAll},
		})
		require.NoError(t, err)
		assert.Equal(t, "ahmed@example.com", u.Email)
		assert.True(t, u.IsActive)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := s.CreateUser("admin", UserInput{
			Name: "Imposter", Email: "ahmed@example.com", Password: "pw", Role: "engineer",
			Projects: []string{"P1"},
		})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUpdateUserPatch(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	seedProject(t, s, "P1")
	seedProject(t, s, "P2")
	u, err := s.CreateUser("admin", UserInput{
		Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "engineer",
		Projects: []string{"P1"},
	})
	require.NoError(t, err)

	t.Run("partial patch leaves other fields alone", func(t *testing.T) {
		projects := []string{"P1", "P2"}
		got, err := s.UpdateUser("admin", u.ID, UserPatch{Projects: &projects})
		require.NoError(t, err)
		assert.Equal(t, "omar@example.com", got.Email)
		assert.Equal(t, models.StringList{"P1", "P2"}, got.Projects)
	})

	t.Run("role change must reference existing role", func(t *testing.T) {
		role := "ghost"
		_, err := s.UpdateUser("admin", u.ID, UserPatch{Role: &role})
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("unknown id is NotFound", func(t *testing.T) {
		active := false
		_, err := s.UpdateUser("admin", "no-such-id", UserPatch{IsActive: &active})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deactivation denies every evaluation", func(t *testing.T) {
		active := false
		got, err := s.UpdateUser("admin", u.ID, UserPatch{IsActive: &active})
		require.NoError(t, err)
		sub, err := s.SubjectFor(got)
		require.NoError(t, err)
		d := authz.Evaluate(s.Catalog, sub, authz.Resource{
			ID: "r", ProjectID: "P1", DocumentType: authz.DocNCRs,
			RequiredScope: authz.ScopeTechnical, Action: authz.ActionRead,
		})
		require.False(t, d.Allowed)
		assert.Equal(t, authz.ReasonInactiveUser, d.Reason)
	})
}

func TestDeleteUserAuditsPriorState(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	seedProject(t, s, "P1")
	u, err := s.CreateUser("admin", UserInput{
		Name: "Omar", Email: "omar@example.com", Password: "pw", Role: "engineer",
		Projects: []string{"P1"},
	})
	require.NoError(t, err)
	require.NoError(t, s.DeleteUser("admin", u.ID))

	_, err = s.GetUser(u.ID)
	require.ErrorIs(t, err, ErrNotFound)

	var entry models.AuditLog
	require.NoError(t, s.DB.First(&entry, "action = ?", "USER_DELETE").Error)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(entry.Metadata, &meta))
	assert.Equal(t, "engineer", meta["role"])
	assert.Equal(t, []any{"P1"}, meta["projects"])
	assert.Equal(t, OutcomeAllowed, entry.Outcome)
}

func TestBulkUpdateBestEffort(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	_, err := s.CreateRole("admin", RoleInput{Name: "viewer", Actions: []string{"read"}})
	require.NoError(t, err)

	var ids []string
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		u, err := s.CreateUser("admin", UserInput{
			Name: email, Email: email, Password: "pw", Role: "engineer",
			Projects: []string{authz.ProjectsAll},
		})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	// middle id does not exist; the other two must still commit
	role := "viewer"
	outcomes := s.BulkUpdate("admin", []BulkItem{
		{ID: ids[0], Patch: UserPatch{Role: &role}},
		{ID: "missing", Patch: UserPatch{Role: &role}},
		{ID: ids[2], Patch: UserPatch{Role: &role}},
	})
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].OK)
	assert.False(t, outcomes[1].OK)
	assert.Equal(t, "NotFound", outcomes[1].Error)
	assert.True(t, outcomes[2].OK)

	for _, id := range []string{ids[0], ids[2]} {
		u, err := s.GetUser(id)
		require.NoError(t, err)
		assert.Equal(t, "viewer", u.RoleName)
	}
	u, err := s.GetUser(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "engineer", u.RoleName)
}

// Bulk role-change on three users where one target role does not exist:
// that entry reports RoleNotFound, the other two persist.
func TestBulkUpdateMixedRoleTargets(t *testing.T) {
	s := testStore(t)
	seedEngineerRole(t, s)
	_, err := s.CreateRole("admin", RoleInput{Name: "viewer", Actions: []string{"read"}})
	require.NoError(t, err)

	var ids []string
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		u, err := s.CreateUser("admin", UserInput{
			Name: email, Email: email, Password: "pw", Role: "engineer",
			Projects: []string{authz.ProjectsAll},
		})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	viewer, ghost := "viewer", "ghost"
	outcomes := s.BulkUpdate("admin", []BulkItem{
		{ID: ids[0], Patch: UserPatch{Role: &viewer}},
		{ID: ids[1], Patch: UserPatch{Role: &ghost}},
		{ID: ids[2], Patch: UserPatch{Role: &viewer}},
	})
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].OK)
	assert.False(t, outcomes[1].OK)
	assert.Equal(t, "RoleNotFound", outcomes[1].Error)
	assert.True(t, outcomes[2].OK)

	for i, want := range []string{"viewer", "engineer", "viewer"} {
		u, err := s.GetUser(ids[i])
		require.NoError(t, err)
		assert.Equal(t, want, u.RoleName)
	}
}
