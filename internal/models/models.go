package models

import "time"

type Role struct {
	ID               int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string     `gorm:"uniqueIndex;not null" json:"name"`
	Description      string     `json:"description"`
	AllowedDocuments StringList `gorm:"type:jsonb" json:"allowed_documents"`
	DataAccess       StringList `gorm:"type:jsonb" json:"data_access"`
	Actions          StringList `gorm:"type:jsonb" json:"actions"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type User struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	RoleName     string     `gorm:"index;not null" json:"role"`
	Projects     StringList `gorm:"type:jsonb" json:"projects"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Project struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	DriveID   string    `json:"drive_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert lives and dies with its project: deleting a project deletes its
// alerts in the same transaction.
type Alert struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID string    `gorm:"index;not null" json:"project_id"`
	Category  string    `gorm:"not null" json:"category"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the persisted shape of an item a drive adapter has listed and
// tagged. Budget, contractor, and notes carry their own sensitivity tiers
// and are subject to per-field redaction.
type Document struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     string    `gorm:"index;not null" json:"project_id"`
	Name          string    `gorm:"not null" json:"name"`
	DocumentType  string    `gorm:"not null" json:"document_type"`
	RequiredScope string    `json:"required_scope"`
	Budget        string    `json:"budget,omitempty"`
	Contractor    string    `json:"contractor,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuditLog rows are append-only: nothing in the service mutates or deletes
// them.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action     string    `gorm:"not null" json:"action"`
	TargetType string    `gorm:"not null" json:"target_type"`
	TargetID   string    `json:"target_id"`
	Outcome    string    `gorm:"not null" json:"outcome"`
	Metadata   JSONB     `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
