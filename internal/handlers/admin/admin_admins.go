// internal/handlers/admin/admin_admins.go
package adminhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"onboardhq.ug/internal/auth"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/handlers"
	"onboardhq.ug/internal/middleware"
	"onboardhq.ug/internal/models"
	"onboardhq.ug/internal/validation"
)

// AdminAccountsPageHandler lists administrator accounts and hosts the
// invitation form.
func AdminAccountsPageHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := app.NewPageData(r)
		data.AdminPageTitle = "Administrators"

		admins, err := app.Gateway.ListAdmins(r.Context())
		if err != nil {
			slog.Error("AdminAccountsPageHandler: failed to load admins", "error", err)
			http.Error(w, "Server error while loading administrators", http.StatusInternalServerError)
			return
		}

		data.Admins = admins
		data.ResultCount = len(admins)
		data.Form = models.AdminInviteForm{}
		app.RenderAdminPage(w, r, "admins.html", data)
	}
}

// AdminInviteHandler sends an invitation to a new administrator. The backend
// emails the invite link; the portal only relays the request.
func AdminInviteHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		form := models.AdminInviteForm{
			Name:  auth.SanitizeName(r.PostForm.Get("name")),
			Email: r.PostForm.Get("email"),
			Role:  r.PostForm.Get("role"),
		}

		validationErrors := validation.ValidateStruct(form)
		if len(validationErrors) > 0 {
			slog.Warn("Admin invite validation failed", "errors", validationErrors)
			renderAdminsWithErrors(app, w, r, form, validationErrors)
			return
		}

		if _, err := app.Gateway.InviteAdmin(r.Context(), gateway.InviteAdminRequest{
			Name:  form.Name,
			Email: form.Email,
			Role:  form.Role,
		}); err != nil {
			var apiErr *gateway.APIError
			message := "Could not send the invitation. Please try again later."
			if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
				message = apiErr.Message
			}
			slog.Error("Admin invite failed", "email", form.Email, "error", err)
			renderAdminsWithErrors(app, w, r, form, url.Values{"email": {message}})
			return
		}

		slog.Info("Admin invitation sent", "email", form.Email, "role", form.Role)
		app.SessionManager.Put(r.Context(), "flash_success", "Invitation sent to "+form.Email+".")
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
	}
}

func renderAdminsWithErrors(app *handlers.AppHandlers, w http.ResponseWriter, r *http.Request, form models.AdminInviteForm, validationErrors url.Values) {
	admins, err := app.Gateway.ListAdmins(r.Context())
	if err != nil {
		admins = nil
	}
	data := app.NewPageData(r)
	data.AdminPageTitle = "Administrators"
	data.Admins = admins
	data.ResultCount = len(admins)
	data.Form = form
	data.Errors = validationErrors
	app.RenderAdminPage(w, r, "admins.html", data)
}

// AdminRevokeHandler removes an administrator account. Only super admins may
// revoke, and nobody can revoke themselves.
func AdminRevokeHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		currentUser, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)
		if currentUser == nil || !currentUser.IsSuper() {
			slog.Warn("Refused admin revocation for non-super user")
			http.Error(w, "Access denied: only a super admin can revoke accounts.", http.StatusForbidden)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		adminID := r.PostForm.Get("id")
		if adminID == "" {
			http.Error(w, "Missing admin id", http.StatusBadRequest)
			return
		}
		if adminID == currentUser.ID {
			app.SessionManager.Put(r.Context(), "flash_error", "You cannot revoke your own account.")
			http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
			return
		}

		if err := app.Gateway.DeleteAdmin(r.Context(), adminID); err != nil {
			slog.Error("Admin revocation failed", "id", adminID, "error", err)
			app.SessionManager.Put(r.Context(), "flash_error", "Could not revoke the account. Please try again.")
		} else {
			slog.Info("Admin account revoked", "id", adminID, "by", currentUser.ID)
			app.SessionManager.Put(r.Context(), "flash_success", "Administrator account revoked.")
		}
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
	}
}
