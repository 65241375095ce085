package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/httpserver/handlers"
	"sitebrain/internal/store"
)

func NewRouter(st *store.Store, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Post("/v1/auth/login", handlers.Login(st, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(st.DB))
		protected.Get("/v1/me", handlers.Me(st, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(st))
		protected.Post("/v1/auth/password", handlers.ChangePassword(st, lg))

		// Content surface: everything here passes through the filter.
		protected.Get("/v1/alerts", handlers.MyAlerts(st, lg))
		protected.Get("/v1/projects/{id}/alerts", handlers.ProjectAlerts(st, lg))
		protected.Get("/v1/documents", handlers.ListDocuments(st, lg))
		protected.Get("/v1/documents/{id}", handlers.GetDocument(st, lg))
		protected.Post("/v1/context/filter", handlers.FilterContext(st, lg))
		protected.Get("/v1/context/role", handlers.RoleContext(st, lg))
		protected.Get("/v1/logs", handlers.MyLogs(st, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin(st.DB, st.Catalog))
			admin.Get("/v1/admin/roles", handlers.ListRoles(st, lg))
			admin.Post("/v1/admin/roles", handlers.CreateRole(st, lg))
			admin.Get("/v1/admin/roles/{name}", handlers.GetRole(st, lg))
			admin.Patch("/v1/admin/roles/{name}", handlers.UpdateRole(st, lg))
			admin.Delete("/v1/admin/roles/{name}", handlers.DeleteRole(st, lg))

			admin.Get("/v1/admin/users", handlers.ListUsers(st, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(st, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUser(st, lg))
			admin.Delete("/v1/admin/users/{id}", handlers.DeleteUser(st, lg))
			admin.Post("/v1/admin/users/bulk", handlers.BulkUpdateUsers(st, lg))

			admin.Get("/v1/admin/projects", handlers.ListProjects(st, lg))
			admin.Post("/v1/admin/projects", handlers.CreateProject(st, lg))
			admin.Delete("/v1/admin/projects/{id}", handlers.DeleteProject(st, lg))
			admin.Post("/v1/admin/alerts", handlers.CreateAlert(st, lg))
			admin.Post("/v1/admin/documents", handlers.CreateDocument(st, lg))

			admin.Get("/v1/admin/logs", handlers.AllLogs(st, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
