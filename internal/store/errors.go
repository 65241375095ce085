package store

import "errors"

// Failure modes surfaced to callers. Handlers map these to structured
// payloads; bulk operations report them per item.
var (
	ErrInvalidPermission = errors.New("permission tag not in catalog")
	ErrDuplicateName     = errors.New("name already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleInUse         = errors.New("role is referenced by active users")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotFound          = errors.New("not found")
	ErrAuditWriteFailed  = errors.New("audit write failed")
)

// Code returns the wire-level error code for a store failure.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPermission):
		return "InvalidPermission"
	case errors.Is(err, ErrDuplicateName):
		return "DuplicateName"
	case errors.Is(err, ErrDuplicateEmail):
		return "DuplicateEmail"
	case errors.Is(err, ErrRoleNotFound):
		return "RoleNotFound"
	case errors.Is(err, ErrRoleInUse):
		return "RoleInUse"
	case errors.Is(err, ErrProjectNotFound):
		return "ProjectNotFound"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrAuditWriteFailed):
		return "AuditWriteFailed"
	default:
		return "Internal"
	}
}
