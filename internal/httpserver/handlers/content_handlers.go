package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/authz"
	"sitebrain/internal/models"
	"sitebrain/internal/store"
)

// subjectFor resolves the caller into the evaluator's input. Role and
// membership are read fresh on every request.
func subjectFor(st *store.Store, r *http.Request) (*models.User, authz.Subject, error) {
	u, err := st.GetUser(auth.Subject(r.Context()))
	if err != nil {
		return nil, authz.Subject{}, err
	}
	sub, err := st.SubjectFor(u)
	if err != nil {
		return nil, authz.Subject{}, err
	}
	return u, sub, nil
}

// MyAlerts returns the caller's alert feed: alerts across their visible
// projects, run through the content filter, newest first.
func MyAlerts(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		ids, err := st.VisibleProjectIDs(u.Projects)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		alerts, err := st.ListAlerts(ids)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, map[string]any{"alerts": filterAlerts(st.Catalog, sub, alerts, lg)})
	}
}

// ProjectAlerts returns one project's alert feed. A caller outside the
// project gets the generic denial; the audit log keeps the reason.
func ProjectAlerts(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "id")
		if _, err := st.GetProject(projectID); err != nil {
			respondStoreError(w, err)
			return
		}
		u, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		members, all := authz.ExpandProjects(sub.Projects)
		_, accessible := members[projectID]
		if all {
			accessible = true
		}
		if !sub.Active || !accessible {
			reason := authz.ReasonProjectNotAccessible
			if !sub.Active {
				reason = authz.ReasonInactiveUser
			}
			if err := st.RecordDenial(u.ID, authz.Resource{ID: projectID, ProjectID: projectID}, reason); err != nil {
				respondStoreError(w, err)
				return
			}
			respondNotAccessible(w)
			return
		}
		alerts, err := st.ListAlerts([]string{projectID})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, map[string]any{"alerts": filterAlerts(st.Catalog, sub, alerts, lg)})
	}
}

func filterAlerts(c *authz.Catalog, sub authz.Subject, alerts []models.Alert, lg *zap.SugaredLogger) []models.Alert {
	candidates := make([]authz.Resource, len(alerts))
	byID := make(map[string]models.Alert, len(alerts))
	for i, a := range alerts {
		res := store.AlertResource(a)
		candidates[i] = res
		byID[res.ID] = a
	}
	kept := authz.Filter(c, sub, candidates)
	out := make([]models.Alert, 0, len(kept))
	for _, f := range kept {
		out = append(out, byID[f.Resource.ID])
	}
	if dropped := len(alerts) - len(out); dropped > 0 {
		lg.Debugw("alert feed filtered", "user", sub.UserID, "dropped", dropped)
	}
	return out
}

// ListDocuments returns the caller's visible document listing with
// per-field redaction applied.
func ListDocuments(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		ids, err := st.VisibleProjectIDs(u.Projects)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		docs, err := st.ListDocuments(ids)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		candidates := make([]authz.Resource, len(docs))
		byID := make(map[string]models.Document, len(docs))
		for i, d := range docs {
			candidates[i] = store.DocumentResource(d, authz.ActionRead)
			byID[d.ID] = d
		}
		kept := authz.Filter(st.Catalog, sub, candidates)
		out := make([]map[string]any, 0, len(kept))
		for _, f := range kept {
			out = append(out, documentView(byID[f.Resource.ID], f.Redact))
		}
		respondJSON(w, map[string]any{"documents": out})
	}
}

// GetDocument is the single-resource fetch. A denial returns the generic
// payload and records the specific reason in the audit log; if that record
// cannot be written the request fails instead of completing unlogged.
func GetDocument(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := st.GetDocument(chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		u, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		res := store.DocumentResource(*d, authz.ActionRead)
		decision := authz.Evaluate(st.Catalog, sub, res)
		if !decision.Allowed {
			if err := st.RecordDenial(u.ID, res, decision.Reason); err != nil {
				respondStoreError(w, err)
				return
			}
			respondNotAccessible(w)
			return
		}
		respondJSON(w, documentView(*d, decision.Redact))
	}
}

func documentView(d models.Document, redact []string) map[string]any {
	out := map[string]any{
		"id":             d.ID,
		"project_id":     d.ProjectID,
		"name":           d.Name,
		"document_type":  d.DocumentType,
		"required_scope": d.RequiredScope,
		"created_at":     d.CreatedAt,
	}
	hidden := make(map[string]struct{}, len(redact))
	for _, f := range redact {
		hidden[f] = struct{}{}
	}
	payload := map[string]string{"budget": d.Budget, "contractor": d.Contractor, "notes": d.Notes}
	for name, v := range payload {
		if _, drop := hidden[name]; !drop && v != "" {
			out[name] = v
		}
	}
	return out
}

// FilterContext is the collaborator boundary: the chat backend, export
// renderer, and integration adapters submit tagged candidates and receive
// the filtered remainder. Nothing may reach a response around this path.
func FilterContext(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Candidates []authz.Resource `json:"candidates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		_, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		kept := authz.Filter(st.Catalog, sub, req.Candidates)
		if dropped := len(req.Candidates) - len(kept); dropped > 0 {
			lg.Debugw("context filtered", "user", sub.UserID, "dropped", dropped)
		}
		respondJSON(w, map[string]any{"results": kept})
	}
}

// RoleContext returns the caller's effective permission view for prompt
// assembly by the assistant backend.
func RoleContext(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, sub, err := subjectFor(st, r)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		role, err := st.GetRole(u.RoleName)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		mask := authz.ExpandScopes(st.Catalog, sub.DataAccess)
		respondJSON(w, map[string]any{
			"role":              role.Name,
			"description":       role.Description,
			"scope_mask":        mask.List(st.Catalog),
			"allowed_documents": role.AllowedDocuments,
			"actions":           role.Actions,
			"projects":          u.Projects,
		})
	}
}
