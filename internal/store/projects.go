package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

type ProjectInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	DriveID string `json:"drive_id,omitempty"`
}

func (s *Store) CreateProject(actorID string, in ProjectInput) (*models.Project, error) {
	if in.ID == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: project id and name required", ErrInvalidPermission)
	}
	if in.ID == authz.ProjectsAll {
		return nil, fmt.Errorf("%w: project id %q is reserved", ErrInvalidPermission, in.ID)
	}
	p := models.Project{ID: in.ID, Name: in.Name, DriveID: in.DriveID, CreatedAt: time.Now()}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ? OR name = ?", in.ID, in.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check project: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: project %q", ErrDuplicateName, in.ID)
		}
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		return recordAudit(tx, &actorID, "PROJECT_CREATE", "project", p.ID, OutcomeAllowed, nil)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes the project and cascades its alerts and documents in
// the same transaction.
func (s *Store) DeleteProject(actorID, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: project %q", ErrNotFound, id)
			}
			return fmt.Errorf("load project: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return fmt.Errorf("cascade alerts: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("cascade documents: %w", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return recordAudit(tx, &actorID, "PROJECT_DELETE", "project", id, OutcomeAllowed, nil)
	})
}

func (s *Store) GetProject(id string) (*models.Project, error) {
	var p models.Project
	if err := s.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	return &p, nil
}

func (s *Store) ListProjects() ([]models.Project, error) {
	var ps []models.Project
	if err := s.DB.Order("created_at asc, id asc").Find(&ps).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

// VisibleProjectIDs expands a membership list against the registry: the
// "all" sentinel resolves to every known project.
func (s *Store) VisibleProjectIDs(projects []string) ([]string, error) {
	members, all := authz.ExpandProjects(projects)
	if !all {
		ids := make([]string, 0, len(members))
		for _, p := range projects {
			if _, ok := members[p]; ok {
				ids = append(ids, p)
			}
		}
		return ids, nil
	}
	ps, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
