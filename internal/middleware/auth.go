package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/logger"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"

	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the authenticated user placed by Auth. Only valid
// below the Auth middleware.
func UserFromContext(ctx context.Context) *model.User {
	return ctx.Value(userKey).(*model.User)
}

// Auth verifies the bearer token and resolves it to a live user record.
// Missing or unparseable tokens are 401; a valid token whose user no longer
// exists is 403.
func Auth(secret string, st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "access token required")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid token")
				return
			}

			u, err := st.UserByID(r.Context(), claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				httpx.Error(w, http.StatusForbidden, httpx.CodeForbidden, "unknown user")
				return
			}
			if err != nil {
				logger.Log.Error("auth user lookup", zap.Error(err))
				httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

// RequireRole gates a route on the authenticated user's role. Must sit below
// Auth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()).Role != role {
				httpx.Error(w, http.StatusForbidden, httpx.CodeForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
