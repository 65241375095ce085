package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/store"
)

func ListRoles(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roles, err := st.ListRoles()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, roles)
	}
}

func GetRole(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := st.GetRole(chi.URLParam(r, "name"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, role)
	}
}

func CreateRole(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.RoleInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		role, err := st.CreateRole(auth.Subject(r.Context()), in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("role created", "role", role.Name, "by", auth.Subject(r.Context()))
		respondJSON(w, role)
	}
}

func UpdateRole(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.RoleInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		name := chi.URLParam(r, "name")
		role, err := st.UpdateRole(auth.Subject(r.Context()), name, in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("role updated", "role", name, "by", auth.Subject(r.Context()))
		respondJSON(w, role)
	}
}

func DeleteRole(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := st.DeleteRole(auth.Subject(r.Context()), name); err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("role deleted", "role", name, "by", auth.Subject(r.Context()))
		respondJSON(w, map[string]any{"deleted": true})
	}
}
