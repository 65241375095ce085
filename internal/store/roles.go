package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

type RoleInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	AllowedDocuments []string `json:"allowed_documents"`
	DataAccess       []string `json:"data_access"`
	Actions          []string `json:"actions"`
}

// validateRoleInput checks every tag against the catalog. Unknown tags are
// rejected, never silently dropped.
func (s *Store) validateRoleInput(in RoleInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: role name required", ErrInvalidPermission)
	}
	for _, d := range in.AllowedDocuments {
		if !s.Catalog.ValidDocumentType(authz.DocumentType(d)) {
			return fmt.Errorf("%w: document type %q", ErrInvalidPermission, d)
		}
	}
	for _, sc := range in.DataAccess {
		if !s.Catalog.ValidScope(authz.Scope(sc)) {
			return fmt.Errorf("%w: data access scope %q", ErrInvalidPermission, sc)
		}
	}
	for _, a := range in.Actions {
		if !s.Catalog.ValidAction(authz.Action(a)) {
			return fmt.Errorf("%w: action %q", ErrInvalidPermission, a)
		}
	}
	return nil
}

func (s *Store) CreateRole(actorID string, in RoleInput) (*models.Role, error) {
	if err := s.validateRoleInput(in); err != nil {
		return nil, err
	}
	role := models.Role{
		Name:             in.Name,
		Description:      in.Description,
		AllowedDocuments: models.StringList(in.AllowedDocuments),
		DataAccess:       models.StringList(in.DataAccess),
		Actions:          models.StringList(in.Actions),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Role{}).Where("name = ?", in.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check role name: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: role %q", ErrDuplicateName, in.Name)
		}
		if err := tx.Create(&role).Error; err != nil {
			return fmt.Errorf("create role: %w", err)
		}
		return recordAudit(tx, &actorID, "ROLE_CREATE", "role", role.Name, OutcomeAllowed, nil)
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole replaces the full permission set after re-validating it. Users
// referencing this role observe the new set on their next request.
func (s *Store) UpdateRole(actorID, name string, in RoleInput) (*models.Role, error) {
	in.Name = name
	if err := s.validateRoleInput(in); err != nil {
		return nil, err
	}
	var role models.Role
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %q", ErrNotFound, name)
			}
			return fmt.Errorf("load role: %w", err)
		}
		role.Description = in.Description
		role.AllowedDocuments = models.StringList(in.AllowedDocuments)
		role.DataAccess = models.StringList(in.DataAccess)
		role.Actions = models.StringList(in.Actions)
		role.UpdatedAt = time.Now()
		if err := tx.Save(&role).Error; err != nil {
			return fmt.Errorf("save role: %w", err)
		}
		return recordAudit(tx, &actorID, "ROLE_UPDATE", "role", role.Name, OutcomeAllowed, nil)
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Store) DeleteRole(actorID, name string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %q", ErrNotFound, name)
			}
			return fmt.Errorf("load role: %w", err)
		}
		var refs int64
		if err := tx.Model(&models.User{}).Where("role_name = ? AND is_active = ?", name, true).Count(&refs).Error; err != nil {
			return fmt.Errorf("count role references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: role %q has %d active users", ErrRoleInUse, name, refs)
		}
		if err := tx.Delete(&role).Error; err != nil {
			return fmt.Errorf("delete role: %w", err)
		}
		return recordAudit(tx, &actorID, "ROLE_DELETE", "role", name, OutcomeAllowed, nil)
	})
}

func (s *Store) GetRole(name string) (*models.Role, error) {
	var role models.Role
	if err := s.DB.First(&role, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("load role: %w", err)
	}
	return &role, nil
}

func (s *Store) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.Order("name asc").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}
