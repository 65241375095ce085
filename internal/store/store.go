package store

import (
	"fmt"

	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

// Store wraps the registries (roles, users, projects), the alert/document
// tables, and the audit log. Mutations run inside a transaction together
// with their audit entry, so a failed audit write aborts the mutation.
type Store struct {
	DB      *gorm.DB
	Catalog *authz.Catalog
}

func New(db *gorm.DB, catalog *authz.Catalog) *Store {
	return &Store{DB: db, Catalog: catalog}
}

// SubjectFor resolves a user record into the evaluator's input. The role is
// read fresh so permission edits take effect at the next request boundary.
func (s *Store) SubjectFor(u *models.User) (authz.Subject, error) {
	var role models.Role
	if err := s.DB.First(&role, "name = ?", u.RoleName).Error; err != nil {
		return authz.Subject{}, fmt.Errorf("resolve role %q: %w", u.RoleName, ErrRoleNotFound)
	}
	sub := authz.Subject{
		UserID:   u.ID,
		Active:   u.IsActive,
		Projects: []string(u.Projects),
	}
	for _, d := range role.AllowedDocuments {
		sub.AllowedDocuments = append(sub.AllowedDocuments, authz.DocumentType(d))
	}
	for _, sc := range role.DataAccess {
		sub.DataAccess = append(sub.DataAccess, authz.Scope(sc))
	}
	for _, a := range role.Actions {
		sub.Actions = append(sub.Actions, authz.Action(a))
	}
	return sub, nil
}
