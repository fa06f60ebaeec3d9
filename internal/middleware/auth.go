package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"onboardhq.ug/internal/models"

	"github.com/alexedwards/scs/v2"
)

type contextKey string

const UserContextKey contextKey = "user"
const IsAuthenticatedContextKey contextKey = "isAuthenticated"

// Session keys for the authenticated identity. The portal has no user store
// of its own, so the session carries everything the pages need; it is filled
// once at login from the backend's response.
const (
	SessionKeyUserID    = "userID"
	SessionKeyUserName  = "userName"
	SessionKeyUserEmail = "userEmail"
	SessionKeyUserRole  = "userRole"
)

// UserFromSession rebuilds the SessionUser stored at login, or nil when the
// session is anonymous.
func UserFromSession(sessionManager *scs.SessionManager, ctx context.Context) *models.SessionUser {
	userID := sessionManager.GetString(ctx, SessionKeyUserID)
	if userID == "" {
		return nil
	}
	return &models.SessionUser{
		ID:    userID,
		Name:  sessionManager.GetString(ctx, SessionKeyUserName),
		Email: sessionManager.GetString(ctx, SessionKeyUserEmail),
		Role:  sessionManager.GetString(ctx, SessionKeyUserRole),
	}
}

// StoreUserInSession records the identity returned by the backend login.
func StoreUserInSession(sessionManager *scs.SessionManager, ctx context.Context, user *models.SessionUser) {
	sessionManager.Put(ctx, SessionKeyUserID, user.ID)
	sessionManager.Put(ctx, SessionKeyUserName, user.Name)
	sessionManager.Put(ctx, SessionKeyUserEmail, user.Email)
	sessionManager.Put(ctx, SessionKeyUserRole, user.Role)
}

// ClearUserFromSession drops the identity on logout.
func ClearUserFromSession(sessionManager *scs.SessionManager, ctx context.Context) {
	sessionManager.Remove(ctx, SessionKeyUserID)
	sessionManager.Remove(ctx, SessionKeyUserName)
	sessionManager.Remove(ctx, SessionKeyUserEmail)
	sessionManager.Remove(ctx, SessionKeyUserRole)
}

// RequireAuthentication redirects anonymous requests to the login page and
// puts the session user into the request context for downstream handlers.
func RequireAuthentication(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromSession(sessionManager, r.Context())
			if user == nil {
				slog.Warn("Access denied: user not authenticated", "path", r.URL.Path)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InjectUserData exposes the session user (when present) to public pages so
// templates can render the signed-in state without requiring auth.
func InjectUserData(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// RequireAuthentication may already have loaded the user.
			if existing, ok := ctx.Value(UserContextKey).(*models.SessionUser); ok && existing != nil {
				ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user := UserFromSession(sessionManager, ctx)
			if user != nil {
				ctx = context.WithValue(ctx, UserContextKey, user)
			}
			ctx = context.WithValue(ctx, IsAuthenticatedContextKey, user != nil)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
