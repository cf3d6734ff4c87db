package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/logger"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

const refreshCookie = "refresh_token"

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "name, email and password are required")
		return
	}
	if len(req.Password) < 8 {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RolePatient,
	}

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "registration failed")
		return
	}

	h.issueSession(w, r, u, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "email and password are required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid credentials")
		return
	}

	h.issueSession(w, r, u, http.StatusOK)
}

// Refresh rotates the refresh cookie and returns a fresh access token. Reuse
// of an already-rotated token revokes every session for that user.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "refresh token required")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if errors.Is(err, store.ErrNotFound) {
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid refresh token")
		return
	}
	if err != nil {
		storeError(w, err)
		return
	}

	if !rt.Usable(time.Now()) {
		if rt.Revoked {
			// replay of a rotated token — assume theft
			if err := h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID); err != nil {
				logger.Log.Error("revoke on reuse", zap.Error(err))
			}
		}
		httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		httpx.Error(w, http.StatusForbidden, httpx.CodeForbidden, "unknown user")
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, u.ID, hash, time.Now().Add(h.refreshTTL)); err != nil {
		storeError(w, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}

	h.setRefreshCookie(w, raw)
	httpx.JSON(w, http.StatusOK, map[string]any{"token": tok, "user": toUserDTO(u)})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if err := h.store.RevokeAllRefreshTokens(r.Context(), u.ID); err != nil {
		storeError(w, err)
		return
	}
	h.clearRefreshCookie(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// issueSession mints the access token, persists a refresh token, and writes
// the {token, user} body.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, u *model.User, status int) {
	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, hash, time.Now().Add(h.refreshTTL)); err != nil {
		storeError(w, err)
		return
	}

	h.setRefreshCookie(w, raw)
	httpx.JSON(w, status, map[string]any{"token": tok, "user": toUserDTO(u)})
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, raw string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    raw,
		Path:     "/api",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.refreshTTL / time.Second),
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/api",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
