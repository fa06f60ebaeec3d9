// internal/handlers/dashboard.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"onboardhq.ug/internal/auth"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/middleware"
	"onboardhq.ug/internal/models"
	"onboardhq.ug/internal/reporting"
	"onboardhq.ug/internal/validation"
)

// DashboardPageHandler renders the ambassador workspace: the recruits table
// filtered by the search box, plus this month's counters.
func (h *AppHandlers) DashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	records, err := h.Gateway.ListStaff(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to load staff list", "userID", user.ID, "error", err)
		h.renderDashboardError(w, r, "Could not load your recruits. Please try again later.")
		return
	}

	spec := reporting.FilterSpec{Search: r.URL.Query().Get("search")}
	visible := reporting.VisibleTo(records, user)
	filtered := reporting.FilterStaff(visible, spec)

	data := h.NewPageData(r)
	data.PageTitle = "My Dashboard"
	data.Staff = visible
	data.FilteredStaff = filtered
	data.Filters = spec
	data.ResultCount = len(filtered)
	data.Monthly = reporting.GetMonthlyStats(visible, time.Now())
	data.DepartmentOptions = models.Departments
	data.Form = models.OnboardStaffForm{}
	data.ExportURL = "/staff/export"
	h.RenderPage(w, r, "dashboard.html", data)
}

func (h *AppHandlers) renderDashboardError(w http.ResponseWriter, r *http.Request, message string) {
	data := h.NewPageData(r)
	data.PageTitle = "My Dashboard"
	data.FlashError = message
	data.DepartmentOptions = models.Departments
	data.Form = models.OnboardStaffForm{}
	h.RenderPage(w, r, "dashboard.html", data)
}

// OnboardStaffHandler registers a new staff member under the signed-in
// ambassador and returns to the dashboard.
func (h *AppHandlers) OnboardStaffHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)

	if err := r.ParseForm(); err != nil {
		slog.Error("Failed to parse onboarding form", "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	form := models.OnboardStaffForm{
		Name:       auth.SanitizeName(r.PostForm.Get("name")),
		Email:      r.PostForm.Get("email"),
		Phone:      r.PostForm.Get("phone"),
		Position:   r.PostForm.Get("position"),
		Department: r.PostForm.Get("department"),
	}

	validationErrors := validation.ValidateStruct(form)
	if len(validationErrors) > 0 {
		slog.Warn("Onboarding form validation failed", "errors", validationErrors, "userID", user.ID)
		records, err := h.Gateway.ListStaff(r.Context(), user.ID)
		if err != nil {
			records = nil
		}
		visible := reporting.VisibleTo(records, user)

		data := h.NewPageData(r)
		data.PageTitle = "My Dashboard"
		data.Staff = visible
		data.FilteredStaff = visible
		data.ResultCount = len(visible)
		data.Monthly = reporting.GetMonthlyStats(visible, time.Now())
		data.DepartmentOptions = models.Departments
		data.Form = form
		data.Errors = validationErrors
		data.ExportURL = "/staff/export"
		h.RenderPage(w, r, "dashboard.html", data)
		return
	}

	_, err := h.Gateway.CreateStaff(r.Context(), gateway.CreateStaffRequest{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Position:     form.Position,
		Department:   form.Department,
		AmbassadorID: user.ID,
	})
	if err != nil {
		var apiErr *gateway.APIError
		message := "Could not register the staff member. Please try again later."
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			message = apiErr.Message
		}
		slog.Error("Staff registration failed", "userID", user.ID, "error", err)
		h.SessionManager.Put(r.Context(), "flash_error", message)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	slog.Info("Staff member onboarded", "ambassadorID", user.ID, "staffEmail", form.Email)
	h.SessionManager.Put(r.Context(), "flash_success", form.Name+" has been registered.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// DeleteStaffHandler removes one of the ambassador's own recruits. The
// ownership check happens here so an ambassador cannot delete another
// ambassador's record by guessing IDs.
func (h *AppHandlers) DeleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	staffID := r.PostForm.Get("id")
	if staffID == "" {
		http.Error(w, "Missing staff id", http.StatusBadRequest)
		return
	}

	if !user.IsAdmin() {
		record, err := h.Gateway.GetStaff(r.Context(), staffID)
		if err != nil || record.AmbassadorID != user.ID {
			slog.Warn("Refused staff deletion outside own roster", "userID", user.ID, "staffID", staffID)
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}
	}

	if err := h.Gateway.DeleteStaff(r.Context(), staffID); err != nil {
		slog.Error("Staff deletion failed", "staffID", staffID, "error", err)
		h.SessionManager.Put(r.Context(), "flash_error", "Could not remove the staff member. Please try again.")
	} else {
		h.SessionManager.Put(r.Context(), "flash_success", "Staff member removed.")
	}

	redirectTo := r.PostForm.Get("return_to")
	if redirectTo == "" {
		redirectTo = "/dashboard"
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// ExportStaffHandler streams the ambassador's current roster as a CSV
// download. Filters from the query string apply so the export matches what
// the table shows.
func (h *AppHandlers) ExportStaffHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)

	records, err := h.Gateway.ListStaff(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to load staff for export", "userID", user.ID, "error", err)
		http.Error(w, "Could not prepare the export.", http.StatusBadGateway)
		return
	}

	spec := reporting.FilterSpec{Search: r.URL.Query().Get("search")}
	filtered := reporting.FilterStaff(reporting.VisibleTo(records, user), spec)

	payload, err := reporting.ExportCSV(filtered)
	if err != nil {
		if errors.Is(err, reporting.ErrNoRows) {
			h.SessionManager.Put(r.Context(), "flash_error", "Nothing to export yet.")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Error(w, "Could not prepare the export.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+reporting.ExportFilename(time.Now())+`"`)
	if _, err := w.Write(payload); err != nil {
		slog.Error("Failed to stream CSV export", "error", err)
	}
}

type staffSearchResponse struct {
	Seq     string               `json:"seq"`
	Count   int                  `json:"count"`
	Results []models.StaffRecord `json:"results"`
}

// SearchStaffAPIHandler backs the live search box on the dashboard. The
// client sends a monotonically increasing seq with each keystroke and drops
// any response whose echoed seq is older than the latest one sent.
func (h *AppHandlers) SearchStaffAPIHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)

	query := r.URL.Query().Get("q")
	seq := r.URL.Query().Get("seq")

	records, err := h.Gateway.ListStaff(r.Context(), user.ID)
	if err != nil {
		slog.Error("Staff search failed", "userID", user.ID, "error", err)
		writeJSONError(w, http.StatusBadGateway, "search unavailable")
		return
	}

	filtered := reporting.FilterStaff(reporting.VisibleTo(records, user), reporting.FilterSpec{Search: query})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(staffSearchResponse{
		Seq:     seq,
		Count:   len(filtered),
		Results: filtered,
	}); err != nil {
		slog.Error("Failed to encode search response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
