// internal/handlers/admin/admin_dashboard.go
package adminhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"onboardhq.ug/internal/handlers"
	"onboardhq.ug/internal/reporting"
)

const trendMonths = 6

// AdminDashboardPageHandler renders the programme overview: headline
// counters, the ambassador leaderboard, department breakdown and the
// onboarding trend, all computed over the filtered staff set.
func AdminDashboardPageHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := app.NewPageData(r)
		data.AdminPageTitle = "Programme Overview"

		records, err := app.Gateway.ListStaff(r.Context(), "")
		if err != nil {
			slog.Error("AdminDashboardPageHandler: failed to load staff", "error", err)
			http.Error(w, "Server error while loading staff records", http.StatusInternalServerError)
			return
		}
		ambassadors, err := app.Gateway.ListAmbassadors(r.Context())
		if err != nil {
			slog.Error("AdminDashboardPageHandler: failed to load ambassadors", "error", err)
			http.Error(w, "Server error while loading ambassadors", http.StatusInternalServerError)
			return
		}

		spec := reporting.FilterSpec{
			Search:       r.URL.Query().Get("search"),
			AmbassadorID: r.URL.Query().Get("ambassador"),
			StartDate:    r.URL.Query().Get("start"),
			EndDate:      r.URL.Query().Get("end"),
		}
		filtered := reporting.FilterStaff(records, spec)

		now := time.Now()
		data.Staff = records
		data.FilteredStaff = filtered
		data.Filters = spec
		data.ResultCount = len(filtered)
		data.Ambassadors = ambassadors
		data.Monthly = reporting.GetMonthlyStats(filtered, now)
		data.Departments = reporting.DepartmentBreakdown(filtered)
		leaderboard := reporting.Leaderboard(ambassadors, filtered)
		data.Leaderboard = leaderboard
		data.TopPerformer = reporting.TopPerformer(leaderboard)
		data.Trend = reporting.MonthlyTrend(filtered, trendMonths, now)
		data.ExportURL = "/admin/staff/export?" + r.URL.RawQuery

		// The backend keeps its own counters; shown next to the locally
		// computed ones so discrepancies surface instead of hiding.
		if stats, err := app.Gateway.Statistics(r.Context(), ""); err != nil {
			slog.Warn("AdminDashboardPageHandler: backend statistics unavailable", "error", err)
		} else {
			data.RemoteStats = stats
		}

		app.RenderAdminPage(w, r, "dashboard.html", data)
	}
}

// AdminExportStaffHandler streams the currently filtered staff set as CSV.
func AdminExportStaffHandler(app *handlers.AppHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := app.Gateway.ListStaff(r.Context(), "")
		if err != nil {
			slog.Error("AdminExportStaffHandler: failed to load staff", "error", err)
			http.Error(w, "Could not prepare the export.", http.StatusBadGateway)
			return
		}

		spec := reporting.FilterSpec{
			Search:       r.URL.Query().Get("search"),
			AmbassadorID: r.URL.Query().Get("ambassador"),
			StartDate:    r.URL.Query().Get("start"),
			EndDate:      r.URL.Query().Get("end"),
		}
		filtered := reporting.FilterStaff(records, spec)

		payload, err := reporting.ExportCSV(filtered)
		if err != nil {
			if errors.Is(err, reporting.ErrNoRows) {
				app.SessionManager.Put(r.Context(), "flash_error", "Nothing to export for the selected filters.")
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
				return
			}
			http.Error(w, "Could not prepare the export.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+reporting.ExportFilename(time.Now())+`"`)
		if _, err := w.Write(payload); err != nil {
			slog.Error("AdminExportStaffHandler: failed to stream CSV", "error", err)
		}
	}
}
