package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sitebrain/internal/store"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(errorPayload{Error: code, Message: message})
}

// respondStoreError maps registry failures onto fixed statuses with their
// taxonomy code in the body.
func respondStoreError(w http.ResponseWriter, err error) {
	code := store.Code(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrInvalidPermission),
		errors.Is(err, store.ErrRoleNotFound),
		errors.Is(err, store.ErrProjectNotFound):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrDuplicateName),
		errors.Is(err, store.ErrDuplicateEmail),
		errors.Is(err, store.ErrRoleInUse):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}
	respondError(w, status, code, err.Error())
}

// respondNotAccessible is the generic single-resource denial. The specific
// rule that matched stays in the audit log, never the response.
func respondNotAccessible(w http.ResponseWriter) {
	respondError(w, http.StatusForbidden, "NotAccessible", "resource is not accessible")
}
