package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"sitebrain/internal/auth"
	"sitebrain/internal/models"
	"sitebrain/internal/store"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		u, err := st.GetUserByEmail(strings.TrimSpace(req.Email))
		if err != nil || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
			respondError(w, http.StatusUnauthorized, "InvalidCredentials", "invalid credentials")
			return
		}
		if !u.IsActive {
			respondError(w, http.StatusUnauthorized, "InactiveUser", "account is deactivated")
			return
		}
		tok, jti, err := auth.Sign(u.ID, u.RoleName)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Internal", "token error")
			return
		}
		sess := models.Session{
			JTI:       jti,
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(auth.TokenTTL()),
			CreatedAt: time.Now(),
		}
		if err := st.DB.Create(&sess).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Internal", "session error")
			return
		}
		lg.Infow("login", "user", u.ID, "role", u.RoleName)
		respondJSON(w, map[string]any{"token": tok})
	}
}

func Logout(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := auth.FromContext(r.Context()).JWTID
		now := time.Now()
		_ = st.DB.Model(&models.Session{}).Where("jti = ?", jti).Update("revoked_at", &now).Error
		respondJSON(w, map[string]any{"ok": true})
	}
}

func Me(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := st.GetUser(auth.Subject(r.Context()))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, u)
	}
}

func ChangePassword(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"current"`
			New     string `json:"new"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "BadRequest", err.Error())
			return
		}
		if req.New == "" {
			respondError(w, http.StatusBadRequest, "BadRequest", "new password required")
			return
		}
		uid := auth.Subject(r.Context())
		u, err := st.GetUser(uid)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if auth.CheckPassword(u.PasswordHash, req.Current) != nil {
			respondError(w, http.StatusUnauthorized, "InvalidCredentials", "invalid credentials")
			return
		}
		if _, err := st.UpdateUser(uid, uid, store.UserPatch{Password: &req.New}); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, map[string]any{"ok": true})
	}
}
