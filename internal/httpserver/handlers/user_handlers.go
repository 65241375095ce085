package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/store"
)

func ListUsers(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := st.ListUsers()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, users)
	}
}

func CreateUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.UserInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		u, err := st.CreateUser(auth.Subject(r.Context()), in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("user created", "user", u.ID, "role", u.RoleName, "by", auth.Subject(r.Context()))
		respondJSON(w, u)
	}
}

func UpdateUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var p store.UserPatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		u, err := st.UpdateUser(auth.Subject(r.Context()), id, p)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, u)
	}
}

func DeleteUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := st.DeleteUser(auth.Subject(r.Context()), id); err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("user deleted", "user", id, "by", auth.Subject(r.Context()))
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// BulkUpdateUsers edits many users and reports per-id outcomes; failures on
// some ids do not undo the others. Accepts either a uniform patch for a
// list of ids or explicit per-id items.
func BulkUpdateUsers(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs   []string         `json:"ids,omitempty"`
			Patch store.UserPatch  `json:"patch,omitempty"`
			Items []store.BulkItem `json:"items,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		items := req.Items
		for _, id := range req.IDs {
			items = append(items, store.BulkItem{ID: id, Patch: req.Patch})
		}
		if len(items) == 0 {
			respondError(w, http.StatusBadRequest, "BadRequest", "ids or items required")
			return
		}
		outcomes := st.BulkUpdate(auth.Subject(r.Context()), items)
		respondJSON(w, map[string]any{"outcomes": outcomes})
	}
}
