// internal/handlers/auth.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"onboardhq.ug/internal/config"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/middleware"
	"onboardhq.ug/internal/models"
	"onboardhq.ug/internal/validation"

	"github.com/alexedwards/scs/v2"
)

type AuthHandlers struct {
	SessionManager *scs.SessionManager
	Gateway        *gateway.Client
	Render         func(w http.ResponseWriter, r *http.Request, pageName string, data *PageData)
	NewPageData    func(r *http.Request) *PageData
	AppConfig      *config.Config
}

func NewAuthHandlers(sm *scs.SessionManager, gw *gateway.Client, renderFunc func(http.ResponseWriter, *http.Request, string, *PageData), newPageDataFunc func(*http.Request) *PageData, cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{
		SessionManager: sm,
		Gateway:        gw,
		Render:         renderFunc,
		NewPageData:    newPageDataFunc,
		AppConfig:      cfg,
	}
}

func (h *AuthHandlers) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	if user := middleware.UserFromSession(h.SessionManager, r.Context()); user != nil {
		redirectByRole(w, r, user)
		return
	}

	data := h.NewPageData(r)
	data.PageTitle = "Sign In"
	data.PageDescription = "Sign in to the staff onboarding portal."
	data.Form = models.LoginForm{}
	h.Render(w, r, "login.html", data)
}

func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse login form", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	form := models.LoginForm{
		Email:    r.PostForm.Get("email"),
		Honeypot: r.PostForm.Get("website"),
	}

	if form.Honeypot != "" {
		slog.Warn("Honeypot field filled on login form", "ip", r.RemoteAddr)
		http.Error(w, "Suspicious activity detected", http.StatusBadRequest)
		return
	}

	validationErrors := validation.ValidateStruct(form)
	if len(validationErrors) > 0 {
		h.renderLoginWithErrors(w, r, form, validationErrors)
		return
	}

	user, err := h.Gateway.Login(r.Context(), form.Email)
	if err != nil {
		var apiErr *gateway.APIError
		message := "Sign-in is unavailable right now. Please try again later."
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			message = "No account was found for that email address."
		}
		slog.Warn("Login rejected", "email", form.Email, "error", err)
		ve := url.Values{}
		ve.Add("email", message)
		h.renderLoginWithErrors(w, r, form, ve)
		return
	}

	// New privilege level, new session token.
	if err := h.SessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("Failed to renew session token on login", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	middleware.StoreUserInSession(h.SessionManager, r.Context(), user)
	h.SessionManager.Put(r.Context(), "flash_success", "Welcome back, "+user.Name+"!")

	slog.Info("User signed in", "userID", user.ID, "role", user.Role)
	redirectByRole(w, r, user)
}

func (h *AuthHandlers) renderLoginWithErrors(w http.ResponseWriter, r *http.Request, form models.LoginForm, validationErrors url.Values) {
	data := h.NewPageData(r)
	data.PageTitle = "Sign In"
	data.Form = form
	data.Errors = validationErrors
	h.Render(w, r, "login.html", data)
}

func (h *AuthHandlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	middleware.ClearUserFromSession(h.SessionManager, r.Context())
	if err := h.SessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("Failed to renew session token on logout", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SetupPasswordPageHandler serves the page an invited administrator lands on
// from the invitation email. The invite token travels in the query string.
func (h *AuthHandlers) SetupPasswordPageHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.SessionManager.Put(r.Context(), "flash_error", "The invitation link is missing its token. Ask for a new invitation.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := h.NewPageData(r)
	data.PageTitle = "Set Up Your Password"
	data.Form = models.SetupPasswordForm{Token: token}
	h.Render(w, r, "setup_password.html", data)
}

func (h *AuthHandlers) SetupPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse password setup form", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	form := models.SetupPasswordForm{
		Token:       r.PostForm.Get("token"),
		Password:    r.PostForm.Get("password"),
		ConfirmPass: r.PostForm.Get("confirm_password"),
	}

	validationErrors := validation.ValidateStruct(form)
	if len(validationErrors) > 0 {
		data := h.NewPageData(r)
		data.PageTitle = "Set Up Your Password"
		form.Password = ""
		form.ConfirmPass = ""
		data.Form = form
		data.Errors = validationErrors
		h.Render(w, r, "setup_password.html", data)
		return
	}

	if err := h.Gateway.CompleteAdminSetup(r.Context(), gateway.CompleteAdminSetupRequest{
		Token:    form.Token,
		Password: form.Password,
	}); err != nil {
		var apiErr *gateway.APIError
		message := "Could not complete the setup. Please try again later."
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			message = apiErr.Message
		}
		slog.Warn("Admin password setup rejected", "error", err)
		data := h.NewPageData(r)
		data.PageTitle = "Set Up Your Password"
		form.Password = ""
		form.ConfirmPass = ""
		data.Form = form
		data.Errors = url.Values{"token": {message}}
		h.Render(w, r, "setup_password.html", data)
		return
	}

	h.SessionManager.Put(r.Context(), "flash_success", "Your password is set. You can sign in now.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func redirectByRole(w http.ResponseWriter, r *http.Request, user *models.SessionUser) {
	if user.IsAdmin() {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
