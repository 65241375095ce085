package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sitebrain/internal/auth"
	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

type UserInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Projects []string `json:"projects"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Password *string   `json:"password,omitempty"`
	Role     *string   `json:"role,omitempty"`
	Projects *[]string `json:"projects,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

// validateProjects accepts the "all" sentinel or a list of known project
// ids.
func validateProjects(tx *gorm.DB, projects []string) error {
	if _, all := authz.ExpandProjects(projects); all {
		return nil
	}
	for _, p := range projects {
		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ?", p).Count(&count).Error; err != nil {
			return fmt.Errorf("check project %q: %w", p, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: project %q", ErrProjectNotFound, p)
		}
	}
	return nil
}

func roleExists(tx *gorm.DB, name string) error {
	var count int64
	if err := tx.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return fmt.Errorf("check role %q: %w", name, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: role %q", ErrRoleNotFound, name)
	}
	return nil
}

func (s *Store) CreateUser(actorID string, in UserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if in.Name == "" || email == "" || in.Password == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: name, email, password and role required", ErrInvalidPermission)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		RoleName:     in.Role,
		Projects:     models.StringList(in.Projects),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := roleExists(tx, in.Role); err != nil {
			return err
		}
		if err := validateProjects(tx, in.Projects); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
		if err := tx.Create(&u).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return recordAudit(tx, &actorID, "USER_CREATE", "user", u.ID, OutcomeAllowed, map[string]any{
			"email": u.Email, "role": u.RoleName,
		})
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateUser(actorID, id string, p UserPatch) (*models.User, error) {
	var u models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %q", ErrNotFound, id)
			}
			return fmt.Errorf("load user: %w", err)
		}
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*p.Email))
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
			}
			u.Email = email
		}
		if p.Password != nil && *p.Password != "" {
			hash, err := auth.HashPassword(*p.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u.PasswordHash = hash
		}
		if p.Role != nil {
			if err := roleExists(tx, *p.Role); err != nil {
				return err
			}
			u.RoleName = *p.Role
		}
		if p.Projects != nil {
			if err := validateProjects(tx, *p.Projects); err != nil {
				return err
			}
			u.Projects = models.StringList(*p.Projects)
		}
		if p.IsActive != nil {
			u.IsActive = *p.IsActive
		}
		u.UpdatedAt = time.Now()
		if err := tx.Save(&u).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return recordAudit(tx, &actorID, "USER_UPDATE", "user", u.ID, OutcomeAllowed, nil)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser hard-deletes the record; the audit entry captures the prior
// role and projects for forensic replay.
func (s *Store) DeleteUser(actorID, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %q", ErrNotFound, id)
			}
			return fmt.Errorf("load user: %w", err)
		}
		if err := tx.Delete(&u).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return recordAudit(tx, &actorID, "USER_DELETE", "user", u.ID, OutcomeAllowed, map[string]any{
			"email": u.Email, "role": u.RoleName, "projects": []string(u.Projects),
		})
	})
}

func (s *Store) GetUser(id string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, email)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// BulkItem pairs one user id with the patch to apply to it.
type BulkItem struct {
	ID    string    `json:"id"`
	Patch UserPatch `json:"patch"`
}

// BulkOutcome reports one id's result in a bulk update.
type BulkOutcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkUpdate applies each item in its own transaction. A failure on one id
// does not roll back ids already committed; the report carries the per-id
// outcome. Best-effort by design, not a batch transaction.
func (s *Store) BulkUpdate(actorID string, items []BulkItem) []BulkOutcome {
	out := make([]BulkOutcome, 0, len(items))
	for _, item := range items {
		if _, err := s.UpdateUser(actorID, item.ID, item.Patch); err != nil {
			out = append(out, BulkOutcome{ID: item.ID, Error: Code(err)})
			continue
		}
		out = append(out, BulkOutcome{ID: item.ID, OK: true})
	}
	return out
}
