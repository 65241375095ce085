package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/store"
)

func ListProjects(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := st.ListProjects()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, ps)
	}
}

func CreateProject(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		p, err := st.CreateProject(auth.Subject(r.Context()), in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("project created", "project", p.ID, "by", auth.Subject(r.Context()))
		respondJSON(w, p)
	}
}

func DeleteProject(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := st.DeleteProject(auth.Subject(r.Context()), id); err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("project deleted", "project", id, "by", auth.Subject(r.Context()))
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// CreateAlert ingests an alert from a monitoring integration.
func CreateAlert(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.AlertInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		a, err := st.CreateAlert(in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, a)
	}
}

// CreateDocument ingests a tagged listing entry from a drive adapter.
func CreateDocument(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in store.DocumentInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		d, err := st.CreateDocument(in)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, d)
	}
}
