package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Project{}, &models.Alert{},
		&models.Document{}, &models.AuditLog{}, &models.Session{},
	))
	return New(db, authz.DefaultCatalog())
}

func seedEngineerRole(t *testing.T, s *Store) *models.Role {
	t.Helper()
	role, err := s.CreateRole("admin", RoleInput{
		Name:             "engineer",
		Description:      "technical documentation",
		AllowedDocuments: []string{"technical_drawings", "ncrs"},
		DataAccess:       []string{"technical", "operational"},
		Actions:          []string{"read", "edit"},
	})
	require.NoError(t, err)
	return role
}

func seedProject(t *testing.T, s *Store, id string) {
	t.Helper()
	_, err := s.CreateProject("admin", ProjectInput{ID: id, Name: "Project " + id})
	require.NoError(t, err)
}

func auditCount(t *testing.T, s *Store, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Model(&models.AuditLog{}).Where("action = ?", action).Count(&n).Error)
	return n
}
