package store

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
)

// recordAudit appends one entry inside the caller's transaction. Audit
// completeness is a guarantee: the error aborts the enclosing mutation.
func recordAudit(tx *gorm.DB, userID *string, action, targetType, targetID, outcome string, meta any) error {
	entry := models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Outcome:    outcome,
	}
	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("%w: encode metadata: %v", ErrAuditWriteFailed, err)
		}
		entry.Metadata = models.JSONB(b)
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrAuditWriteFailed, err)
	}
	return nil
}

// RecordDenial logs a denied single-resource access with the specific
// reason. The caller must fail the request if this returns an error: a
// denial that cannot be audited is not allowed to complete quietly.
func (s *Store) RecordDenial(userID string, res authz.Resource, reason authz.Reason) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return recordAudit(tx, &userID, "ACCESS_DENIED", "resource", res.ID, OutcomeDenied, map[string]any{
			"reason":        string(reason),
			"project_id":    res.ProjectID,
			"document_type": string(res.DocumentType),
			"action":        string(res.Action),
		})
	})
}

// ListAudit returns recent entries, newest first.
func (s *Store) ListAudit(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var logs []models.AuditLog
	if err := s.DB.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return logs, nil
}

// ListAuditForUser returns recent entries for one user, newest first.
func (s *Store) ListAuditForUser(userID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var logs []models.AuditLog
	if err := s.DB.Where("user_id = ?", userID).Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit for user: %w", err)
	}
	return logs, nil
}
