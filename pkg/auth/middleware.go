package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/campuskeep/campuskeep/pkg/httpx"
	"github.com/campuskeep/campuskeep/pkg/logger"
)

const sessionName = "campuskeep_session"

// Session value keys written at login and read by RequireAuth.
const (
	sessionUserIDKey   = "user_id"
	sessionUserNameKey = "user_name"
	sessionIsAdminKey  = "is_admin"
)

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the actor, and injects it into the
// request context. Returns 401 Unauthorized if the session is missing,
// invalid, or lacks a valid user identity.
//
// After this middleware, handlers can safely call auth.ActorFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userIDStr, ok := session.Values[sessionUserIDKey].(string)
			if !ok || userIDStr == "" {
				log.WarnContext(r.Context(), "session missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id in session", "user_id", userIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			name, _ := session.Values[sessionUserNameKey].(string)
			isAdmin, _ := session.Values[sessionIsAdminKey].(bool)

			ctx := WithActor(r.Context(), Actor{ID: userID, Name: name, Admin: isAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route group to administrator actors. Must run after
// RequireAuth.
func RequireAdmin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := ActorFromCtx(r.Context())
			if err != nil {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			if !actor.Admin {
				log.WarnContext(r.Context(), "non-admin denied", "user_id", actor.ID)
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "administrator access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
