package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/store"
)

// MyLogs returns recent audit entries for the caller; administrators reach
// the full log through the admin route.
func MyLogs(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := st.ListAuditForUser(auth.Subject(r.Context()), limit)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, logs)
	}
}

// AllLogs returns recent audit entries for everyone. Admin surface only.
func AllLogs(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := st.ListAudit(limit)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, logs)
	}
}
