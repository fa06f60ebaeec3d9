// internal/middleware/csrf.go
package middleware

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/justinas/nosurf"
)

// NoSurfMiddleware provides CSRF protection for form-handling routes.
// isProduction enables the Secure cookie flag.
func NoSurfMiddleware(next http.Handler, isProduction bool) http.Handler {
	csrfHandler := nosurf.New(next)

	// nosurf manages token generation itself; the key in the environment is
	// checked here so a missing production key is visible in the logs.
	if os.Getenv("CSRF_AUTH_KEY") == "" {
		if isProduction {
			slog.Error("CRITICAL: CSRF_AUTH_KEY is not set in the production environment")
		} else {
			slog.Warn("CSRF_AUTH_KEY is not set. Tokens will not be consistent across restarts (development only).")
		}
	}

	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("CSRF token check failed", "path", r.URL.Path, "method", r.Method, "reason", nosurf.Reason(r))
		http.Error(w, "Security error: missing or invalid CSRF token.", http.StatusForbidden)
	}))

	return csrfHandler
}
