package auth

import (
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"sitebrain/internal/authz"
	"sitebrain/internal/models"
)

// JWTAuth verifies the bearer token and checks its session record, so a
// logout revokes outstanding tokens immediately.
func JWTAuth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")
			claims, err := Verify(raw)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			var sess models.Session
			if claims.JWTID == "" || db.First(&sess, "jti = ?", claims.JWTID).Error != nil {
				http.Error(w, "session not found", http.StatusUnauthorized)
				return
			}
			if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
				http.Error(w, "session expired/revoked", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin guards the admin surface. The caller's role is read fresh
// from the registry and must expand to the admin action; a deactivated user
// is rejected even with a live session.
func RequireAdmin(db *gorm.DB, catalog *authz.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var u models.User
			if err := db.First(&u, "id = ?", Subject(r.Context())).Error; err != nil || !u.IsActive {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			var role models.Role
			if err := db.First(&role, "name = ?", u.RoleName).Error; err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			var actions []authz.Action
			for _, a := range role.Actions {
				actions = append(actions, authz.Action(a))
			}
			if _, ok := authz.ExpandActions(catalog, actions)[authz.ActionAdmin]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
