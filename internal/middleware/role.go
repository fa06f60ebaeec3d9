// internal/middleware/role.go
package middleware

import (
	"log/slog"
	"net/http"

	"onboardhq.ug/internal/models"
)

// RequireRole allows the request through only when the authenticated user has
// one of the listed roles. Must run after RequireAuthentication.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(*models.SessionUser)
			if !ok || user == nil {
				// RequireAuthentication should have run first.
				slog.Error("RequireRole: no user in request context")
				http.Error(w, "Access denied: user not authenticated.", http.StatusUnauthorized)
				return
			}

			for _, allowed := range allowedRoles {
				if user.Role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("Access denied: insufficient role", "userID", user.ID, "userRole", user.Role, "requiredRoles", allowedRoles, "path", r.URL.Path)
			http.Error(w, "Access denied: you do not have permission to view this resource.", http.StatusForbidden)
		})
	}
}
