package store

import (
	"fmt"
	"strconv"
	"time"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

type AlertInput struct {
	ProjectID string `json:"project_id"`
	Category  string `json:"category"`
	Message   string `json:"message"`
}

func (s *Store) CreateAlert(in AlertInput) (*models.Alert, error) {
	if _, err := s.GetProject(in.ProjectID); err != nil {
		return nil, err
	}
	a := models.Alert{
		ProjectID: in.ProjectID,
		Category:  in.Category,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(&a).Error; err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return &a, nil
}

// ListAlerts returns alerts for the given projects, newest first. The
// caller is responsible for running the result through the content filter.
func (s *Store) ListAlerts(projectIDs []string) ([]models.Alert, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var alerts []models.Alert
	if err := s.DB.Where("project_id IN ?", projectIDs).Order("created_at desc, id desc").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// AlertResource tags an alert for the evaluator: project-bound, read
// action, scope derived from the alert category.
func AlertResource(a models.Alert) authz.Resource {
	return authz.Resource{
		ID:            strconv.FormatInt(a.ID, 10),
		ProjectID:     a.ProjectID,
		RequiredScope: authz.ScopeForAlertCategory(a.Category),
		Action:        authz.ActionRead,
	}
}
