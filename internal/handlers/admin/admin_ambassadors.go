// internal/handlers/admin/admin_ambassadors.go
package adminhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"onboardhq.ug/internal/auth"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/handlers"
	"onboardhq.ug/internal/models"
	"onboardhq.ug/internal/reporting"
	"onboardhq.ug/internal/validation"
)

// AdminAmbassadorsListPageHandler shows the ambassador registry with a
// search box and the registration form.
func AdminAmbassadorsListPageHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := app.NewPageData(r)
		data.AdminPageTitle = "Ambassadors"

		ambassadors, err := app.Gateway.ListAmbassadors(r.Context())
		if err != nil {
			slog.Error("AdminAmbassadorsListPageHandler: failed to load ambassadors", "error", err)
			http.Error(w, "Server error while loading ambassadors", http.StatusInternalServerError)
			return
		}

		search := strings.TrimSpace(r.URL.Query().Get("search"))
		if search != "" {
			needle := strings.ToLower(search)
			kept := make([]models.Ambassador, 0, len(ambassadors))
			for _, a := range ambassadors {
				if strings.Contains(strings.ToLower(a.Name), needle) ||
					strings.Contains(strings.ToLower(a.Email), needle) ||
					strings.Contains(strings.ToLower(a.Region), needle) {
					kept = append(kept, a)
				}
			}
			ambassadors = kept
		}

		data.Ambassadors = ambassadors
		data.ResultCount = len(ambassadors)
		data.Filters = reporting.FilterSpec{Search: search}
		data.RegionOptions = models.Regions
		data.Form = models.AmbassadorForm{}
		app.RenderAdminPage(w, r, "ambassadors.html", data)
	}
}

// AdminCreateAmbassadorHandler registers a new ambassador account.
func AdminCreateAmbassadorHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		form := models.AmbassadorForm{
			Name:   auth.SanitizeName(r.PostForm.Get("name")),
			Email:  r.PostForm.Get("email"),
			Region: r.PostForm.Get("region"),
		}

		validationErrors := validation.ValidateStruct(form)
		if len(validationErrors) > 0 {
			slog.Warn("Ambassador registration validation failed", "errors", validationErrors)
			renderAmbassadorsWithErrors(app, w, r, form, validationErrors)
			return
		}

		_, err := app.Gateway.CreateAmbassador(r.Context(), gateway.CreateAmbassadorRequest{
			Name:   form.Name,
			Email:  form.Email,
			Region: form.Region,
		})
		if err != nil {
			var apiErr *gateway.APIError
			message := "Could not register the ambassador. Please try again later."
			if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
				message = apiErr.Message
			}
			slog.Error("Ambassador registration failed", "email", form.Email, "error", err)
			renderAmbassadorsWithErrors(app, w, r, form, url.Values{"email": {message}})
			return
		}

		slog.Info("Ambassador registered", "email", form.Email, "region", form.Region)
		app.SessionManager.Put(r.Context(), "flash_success", form.Name+" has been registered as an ambassador.")
		http.Redirect(w, r, "/admin/ambassadors", http.StatusSeeOther)
	}
}

func renderAmbassadorsWithErrors(app *handlers.AppHandlers, w http.ResponseWriter, r *http.Request, form models.AmbassadorForm, validationErrors url.Values) {
	ambassadors, err := app.Gateway.ListAmbassadors(r.Context())
	if err != nil {
		ambassadors = nil
	}
	data := app.NewPageData(r)
	data.AdminPageTitle = "Ambassadors"
	data.Ambassadors = ambassadors
	data.ResultCount = len(ambassadors)
	data.RegionOptions = models.Regions
	data.Form = form
	data.Errors = validationErrors
	app.RenderAdminPage(w, r, "ambassadors.html", data)
}

// AdminAmbassadorDetailPageHandler shows one ambassador with their recruits,
// filterable by search text and onboarding date range.
func AdminAmbassadorDetailPageHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ambassadorID := r.URL.Query().Get("id")
		if ambassadorID == "" {
			http.Error(w, "Missing ambassador id", http.StatusBadRequest)
			return
		}

		ambassador, err := app.Gateway.GetAmbassador(r.Context(), ambassadorID)
		if err != nil {
			slog.Error("AdminAmbassadorDetailPageHandler: ambassador not found", "id", ambassadorID, "error", err)
			http.NotFound(w, r)
			return
		}

		records, err := app.Gateway.ListStaff(r.Context(), ambassadorID)
		if err != nil {
			slog.Error("AdminAmbassadorDetailPageHandler: failed to load recruits", "id", ambassadorID, "error", err)
			http.Error(w, "Server error while loading recruits", http.StatusInternalServerError)
			return
		}

		spec := reporting.FilterSpec{
			Search:       r.URL.Query().Get("search"),
			AmbassadorID: ambassadorID,
			StartDate:    r.URL.Query().Get("start"),
			EndDate:      r.URL.Query().Get("end"),
		}
		filtered := reporting.FilterStaff(records, spec)

		data := app.NewPageData(r)
		data.AdminPageTitle = "Ambassador: " + ambassador.Name
		data.SelectedAmbassador = ambassador
		data.Staff = records
		data.FilteredStaff = filtered
		data.Filters = spec
		data.ResultCount = len(filtered)
		data.RegionOptions = models.Regions
		data.Form = models.AmbassadorUpdateForm{Name: ambassador.Name, Region: ambassador.Region}
		data.FormAction = "/admin/ambassadors/update?id=" + url.QueryEscape(ambassadorID)
		app.RenderAdminPage(w, r, "ambassador_detail.html", data)
	}
}

// AdminUpdateAmbassadorHandler updates an ambassador's name and region.
// Email is the account identity and stays fixed.
func AdminUpdateAmbassadorHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ambassadorID := r.URL.Query().Get("id")
		if ambassadorID == "" {
			http.Error(w, "Missing ambassador id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		form := models.AmbassadorUpdateForm{
			Name:   auth.SanitizeName(r.PostForm.Get("name")),
			Region: r.PostForm.Get("region"),
		}

		validationErrors := validation.ValidateStruct(form)
		if len(validationErrors) > 0 {
			app.SessionManager.Put(r.Context(), "flash_error", "Check the name and region and try again.")
			http.Redirect(w, r, "/admin/ambassadors/view?id="+url.QueryEscape(ambassadorID), http.StatusSeeOther)
			return
		}

		_, err := app.Gateway.UpdateAmbassador(r.Context(), ambassadorID, gateway.UpdateAmbassadorRequest{
			Name:   form.Name,
			Region: form.Region,
		})
		if err != nil {
			slog.Error("Ambassador update failed", "id", ambassadorID, "error", err)
			app.SessionManager.Put(r.Context(), "flash_error", "Could not save the changes. Please try again.")
		} else {
			app.SessionManager.Put(r.Context(), "flash_success", "Ambassador updated.")
		}
		http.Redirect(w, r, "/admin/ambassadors/view?id="+url.QueryEscape(ambassadorID), http.StatusSeeOther)
	}
}

// AdminDeleteAmbassadorHandler removes an ambassador account.
func AdminDeleteAmbassadorHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		ambassadorID := r.PostForm.Get("id")
		if ambassadorID == "" {
			http.Error(w, "Missing ambassador id", http.StatusBadRequest)
			return
		}

		if err := app.Gateway.DeleteAmbassador(r.Context(), ambassadorID); err != nil {
			slog.Error("Ambassador deletion failed", "id", ambassadorID, "error", err)
			app.SessionManager.Put(r.Context(), "flash_error", "Could not remove the ambassador. Please try again.")
		} else {
			slog.Info("Ambassador removed", "id", ambassadorID)
			app.SessionManager.Put(r.Context(), "flash_success", "Ambassador removed.")
		}
		http.Redirect(w, r, "/admin/ambassadors", http.StatusSeeOther)
	}
}
