// cmd/server/main.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"onboardhq.ug/internal/config"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/handlers"
	adminhandlers "onboardhq.ug/internal/handlers/admin"
	"onboardhq.ug/internal/middleware"
	"onboardhq.ug/internal/models"

	"github.com/alexedwards/scs/v2"
)

var sessionManager *scs.SessionManager

func main() {
	configPath := "configs/config.yaml"
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: could not load configuration: %v\n", err)
		os.Exit(1)
	}

	config.InitLogger(cfg.AppEnv)
	slog.Info("Starting onboarding portal...", "app_env", cfg.AppEnv)

	apiClient := gateway.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.RequestTimeoutSeconds)*time.Second)
	slog.Info("Onboarding API client ready", "base_url", cfg.API.BaseURL, "timeout_s", cfg.API.RequestTimeoutSeconds)

	// All durable state lives behind the onboarding API, so the in-memory
	// session store is the only local state. A restart signs everyone out.
	sessionManager = scs.New()
	sessionManager.Lifetime = 24 * time.Hour
	sessionManager.Cookie.Name = "onboard_session"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.AppEnv == "production"
	sessionManager.Cookie.Path = "/"

	slog.Info("Session manager initialized", "store", "memstore", "lifetime", sessionManager.Lifetime, "secure_cookie", sessionManager.Cookie.Secure)

	appHandlers, err := handlers.NewAppHandlers(cfg, sessionManager, apiClient)
	if err != nil {
		slog.Error("Fatal: could not initialize page handlers", "error", err)
		os.Exit(1)
	}
	authHandlers := handlers.NewAuthHandlers(sessionManager, apiClient, appHandlers.RenderPage, appHandlers.NewPageData, cfg)

	mainMux := http.NewServeMux()
	fs := http.FileServer(http.Dir("./static"))
	mainMux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Middleware
	injectUserMiddleware := middleware.InjectUserData(sessionManager)
	requireAuthMiddleware := middleware.RequireAuthentication(sessionManager)
	requireAdminRoleMiddleware := middleware.RequireRole(models.RoleAdmin, models.RoleSuper)

	// Public Routes
	mainMux.Handle("/", injectUserMiddleware(http.HandlerFunc(appHandlers.WelcomePageHandler)))
	mainMux.Handle("/login", injectUserMiddleware(http.HandlerFunc(authHandlers.LoginPageHandler)))
	mainMux.Handle("/api/login", middleware.RateLimitMiddleware(http.HandlerFunc(authHandlers.LoginHandler), cfg.LoginRateLimit.RPS, cfg.LoginRateLimit.Burst))
	mainMux.HandleFunc("/api/logout", authHandlers.LogoutHandler)

	// Invited admins land here from the invitation email.
	mainMux.Handle("/setup-password", injectUserMiddleware(http.HandlerFunc(authHandlers.SetupPasswordPageHandler)))
	mainMux.HandleFunc("/api/setup-password", authHandlers.SetupPasswordHandler)

	// Ambassador Routes
	mainMux.Handle("/dashboard", requireAuthMiddleware(http.HandlerFunc(appHandlers.DashboardPageHandler)))
	mainMux.Handle("/staff/onboard", requireAuthMiddleware(http.HandlerFunc(appHandlers.OnboardStaffHandler)))
	mainMux.Handle("/staff/delete", requireAuthMiddleware(http.HandlerFunc(appHandlers.DeleteStaffHandler)))
	mainMux.Handle("/staff/export", requireAuthMiddleware(http.HandlerFunc(appHandlers.ExportStaffHandler)))
	mainMux.Handle("/api/staff/search", requireAuthMiddleware(http.HandlerFunc(appHandlers.SearchStaffAPIHandler)))

	csrfProtectedRoutes := middleware.NoSurfMiddleware(mainMux, cfg.AppEnv == "production")

	// --- Admin Routes ---
	adminRouter := http.NewServeMux()
	adminRouter.HandleFunc("/dashboard", adminhandlers.AdminDashboardPageHandler(appHandlers))
	adminRouter.HandleFunc("/staff/export", adminhandlers.AdminExportStaffHandler(appHandlers))
	adminRouter.HandleFunc("/staff/delete", appHandlers.DeleteStaffHandler)
	adminRouter.HandleFunc("/ambassadors", adminhandlers.AdminAmbassadorsListPageHandler(appHandlers))
	adminRouter.HandleFunc("/ambassadors/create", adminhandlers.AdminCreateAmbassadorHandler(appHandlers))
	adminRouter.HandleFunc("/ambassadors/view", adminhandlers.AdminAmbassadorDetailPageHandler(appHandlers))
	adminRouter.HandleFunc("/ambassadors/update", adminhandlers.AdminUpdateAmbassadorHandler(appHandlers))
	adminRouter.HandleFunc("/ambassadors/delete", adminhandlers.AdminDeleteAmbassadorHandler(appHandlers))
	adminRouter.HandleFunc("/admins", adminhandlers.AdminAccountsPageHandler(appHandlers))
	adminRouter.HandleFunc("/admins/invite", adminhandlers.AdminInviteHandler(appHandlers))
	adminRouter.HandleFunc("/admins/revoke", adminhandlers.AdminRevokeHandler(appHandlers))

	adminProtectedHandler := requireAuthMiddleware(
		requireAdminRoleMiddleware(
			middleware.NoSurfMiddleware(adminRouter, cfg.AppEnv == "production"),
		),
	)
	// --- End Admin Routes ---

	topLevelMux := http.NewServeMux()
	topLevelMux.Handle("/admin/", http.StripPrefix("/admin", adminProtectedHandler))
	topLevelMux.Handle("/", csrfProtectedRoutes)

	finalHandler := sessionManager.LoadAndSave(topLevelMux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Onboarding portal listening", "address", fmt.Sprintf("http://localhost%s", addr))

	server := &http.Server{
		Addr:         addr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Fatal: HTTP server failed", "address", addr, "error", err)
		os.Exit(1)
	}
}
