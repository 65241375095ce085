package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

type DocumentInput struct {
	ProjectID     string `json:"project_id"`
	Name          string `json:"name"`
	DocumentType  string `json:"document_type"`
	RequiredScope string `json:"required_scope"`
	Budget        string `json:"budget,omitempty"`
	Contractor    string `json:"contractor,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (s *Store) CreateDocument(in DocumentInput) (*models.Document, error) {
	if _, err := s.GetProject(in.ProjectID); err != nil {
		return nil, err
	}
	d := models.Document{
		ID:            uuid.NewString(),
		ProjectID:     in.ProjectID,
		Name:          in.Name,
		DocumentType:  in.DocumentType,
		RequiredScope: in.RequiredScope,
		Budget:        in.Budget,
		Contractor:    in.Contractor,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if err := s.DB.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &d, nil
}

func (s *Store) GetDocument(id string) (*models.Document, error) {
	var d models.Document
	if err := s.DB.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &d, nil
}

// ListDocuments returns documents for the given projects, newest first.
// Results must pass through the content filter before leaving the system.
func (s *Store) ListDocuments(projectIDs []string) ([]models.Document, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var docs []models.Document
	if err := s.DB.Where("project_id IN ?", projectIDs).Order("created_at desc, id asc").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// DocumentResource tags a stored document for the evaluator. Payload fields
// carry their own sensitivity tiers for partial redaction. Missing tags on
// the record stay missing here; the evaluator treats them as the most
// restrictive values.
func DocumentResource(d models.Document, action authz.Action) authz.Resource {
	return authz.Resource{
		ID:            d.ID,
		ProjectID:     d.ProjectID,
		DocumentType:  authz.DocumentType(d.DocumentType),
		RequiredScope: authz.Scope(d.RequiredScope),
		Action:        action,
		Fields: []authz.Field{
			{Name: "budget", Scope: authz.ScopeFinancial},
			{Name: "contractor", Scope: authz.ScopeCommercial},
			{Name: "notes", Scope: authz.ScopeOperational},
		},
	}
}
