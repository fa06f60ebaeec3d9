// internal/handlers/pages.go
package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"onboardhq.ug/internal/config"
	"onboardhq.ug/internal/gateway"
	"onboardhq.ug/internal/middleware"
	"onboardhq.ug/internal/models"
	"onboardhq.ug/internal/reporting"

	"github.com/alexedwards/scs/v2"
	"github.com/justinas/nosurf"
)

// PageData carries everything a template can render. Most fields are only
// used by one page; the zero value is safe everywhere else.
type PageData struct {
	SiteName        string
	SiteDescription string
	CurrentYear     int
	BaseURL         string
	CurrentPath     string
	CSRFToken       string
	IsAuthenticated bool
	User            *models.SessionUser
	PageTitle       string
	PageDescription string
	AdminPageTitle  string
	CanonicalURL    string
	RobotsContent   string
	FlashSuccess    string
	FlashError      string
	Errors          url.Values
	Form            interface{}
	FormValues      url.Values

	// Staff and filtering
	Staff         []models.StaffRecord
	FilteredStaff []models.StaffRecord
	Filters       reporting.FilterSpec
	ResultCount   int

	// Aggregates
	Monthly      reporting.MonthlyStats
	Departments  []reporting.DepartmentShare
	Leaderboard  []reporting.LeaderboardEntry
	TopPerformer *reporting.LeaderboardEntry
	Trend        []reporting.TrendPoint
	RemoteStats  *gateway.Statistics

	// Registries
	Ambassadors        []models.Ambassador
	SelectedAmbassador *models.Ambassador
	Admins             []models.Admin

	// Form option lists
	DepartmentOptions []string
	RegionOptions     []string

	ExportURL  string
	FormAction string
}

type AppHandlers struct {
	Config         *config.Config
	Gateway        *gateway.Client
	BaseTmpl       *template.Template
	AdminBaseTmpl  *template.Template
	PagesPath      string
	AdminPagesPath string
	SessionManager *scs.SessionManager
}

func parseBaseTemplates(baseDir, baseFilename, appBaseURL string) (*template.Template, error) {
	baseFile := filepath.Join(baseDir, baseFilename)
	if _, err := os.Stat(baseFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("base template '%s' not found in '%s'", baseFilename, baseDir)
	}

	partFiles, err := filepath.Glob(filepath.Join("templates", "parts", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("globbing partial templates: %w", err)
	}

	funcMap := template.FuncMap{
		"safeHTML":   func(s string) template.HTML { return template.HTML(s) },
		"add":        func(a, b int) int { return a + b },
		"hasPrefix":  strings.HasPrefix,
		"base_url":   func() string { return strings.TrimSuffix(appBaseURL, "/") },
		"trimSuffix": strings.TrimSuffix,
		"firstName":  func(s string) string { return strings.SplitN(s, " ", 2)[0] },
		"initial": func(s string) string {
			if s == "" {
				return "?"
			}
			return strings.ToUpper(s[:1])
		},
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("02 Jan 2006")
		},
	}

	tmpl, err := template.New(filepath.Base(baseFile)).Funcs(funcMap).ParseFiles(baseFile)
	if err != nil {
		return nil, fmt.Errorf("parsing base template '%s': %w", baseFile, err)
	}

	if len(partFiles) > 0 {
		tmpl, err = tmpl.ParseFiles(partFiles...)
		if err != nil {
			return nil, fmt.Errorf("parsing partial templates: %w", err)
		}
	}
	slog.Info("Base and partial templates loaded", "base_template", baseFile, "parts", len(partFiles))
	return tmpl, nil
}

func NewAppHandlers(cfg *config.Config, sm *scs.SessionManager, gw *gateway.Client) (*AppHandlers, error) {
	baseTmpl, err := parseBaseTemplates("templates", "base.html", cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base templates: %w", err)
	}
	adminBaseTmpl, err := parseBaseTemplates(filepath.Join("templates", "admin"), "base_admin.html", cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin base templates: %w", err)
	}
	if cfg.CurrentYear == 0 {
		cfg.CurrentYear = time.Now().Year()
	}

	return &AppHandlers{
		Config:         cfg,
		Gateway:        gw,
		BaseTmpl:       baseTmpl,
		AdminBaseTmpl:  adminBaseTmpl,
		PagesPath:      filepath.Join("templates", "pages"),
		AdminPagesPath: filepath.Join("templates", "admin", "pages"),
		SessionManager: sm,
	}, nil
}

func (h *AppHandlers) NewPageData(r *http.Request) *PageData {
	isAuthenticated, _ := r.Context().Value(middleware.IsAuthenticatedContextKey).(bool)
	currentUser, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)

	return &PageData{
		SiteName:        h.Config.SiteName,
		SiteDescription: h.Config.SiteDescription,
		CurrentYear:     h.Config.CurrentYear,
		BaseURL:         h.Config.BaseURL,
		CurrentPath:     r.URL.Path,
		CSRFToken:       nosurf.Token(r),
		IsAuthenticated: isAuthenticated,
		User:            currentUser,
		CanonicalURL:    h.Config.BaseURL + r.URL.Path,
		RobotsContent:   "noindex, nofollow",
		FlashSuccess:    h.SessionManager.PopString(r.Context(), "flash_success"),
		FlashError:      h.SessionManager.PopString(r.Context(), "flash_error"),
		Errors:          url.Values{},
	}
}

func (h *AppHandlers) RenderPage(w http.ResponseWriter, r *http.Request, pageName string, data *PageData) {
	h.render(w, r, h.BaseTmpl, h.PagesPath, "base.html", pageName, data)
}

func (h *AppHandlers) RenderAdminPage(w http.ResponseWriter, r *http.Request, pageName string, data *PageData) {
	if data == nil {
		data = h.NewPageData(r)
	}
	if data.AdminPageTitle == "" && data.PageTitle != "" {
		data.AdminPageTitle = data.PageTitle
	} else if data.AdminPageTitle == "" {
		data.AdminPageTitle = "Admin Panel"
	}
	h.render(w, r, h.AdminBaseTmpl, h.AdminPagesPath, "base_admin.html", pageName, data)
}

func (h *AppHandlers) render(w http.ResponseWriter, r *http.Request, baseTmpl *template.Template, pagesDir, baseFile, pageName string, data *PageData) {
	if data == nil {
		data = h.NewPageData(r)
	}
	if baseTmpl == nil {
		slog.Error("Base template not initialized", "base_file_expected", baseFile)
		http.Error(w, "Internal server error (template)", http.StatusInternalServerError)
		return
	}
	if data.PageTitle == "" {
		data.PageTitle = h.Config.SiteName
	}
	if data.PageDescription == "" && baseFile == "base.html" {
		data.PageDescription = h.Config.SiteDescription
	}

	pagePath := filepath.Join(pagesDir, pageName)
	if _, err := os.Stat(pagePath); os.IsNotExist(err) {
		slog.Error("Page template not found", "page", pageName, "path", pagePath)
		http.Error(w, "Internal server error (page template)", http.StatusInternalServerError)
		return
	}

	tmplToExecute, err := baseTmpl.Clone()
	if err != nil {
		slog.Error("Failed to clone base template", "base_file", baseFile, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	tmplToExecute, err = tmplToExecute.ParseFiles(pagePath)
	if err != nil {
		slog.Error("Failed to parse page template", "page", pageName, "path", pagePath, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if err := tmplToExecute.ExecuteTemplate(w, baseFile, data); err != nil {
		slog.Error("Template execution error", "template", baseFile, "page", pageName, "error", err)
	}
}

// WelcomePageHandler routes the root path by role: ambassadors to their
// dashboard, admins to the admin area, everyone else to login.
func (h *AppHandlers) WelcomePageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	isAuthenticated, _ := r.Context().Value(middleware.IsAuthenticatedContextKey).(bool)
	if isAuthenticated {
		currentUser, _ := r.Context().Value(middleware.UserContextKey).(*models.SessionUser)
		if currentUser.IsAdmin() {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		} else {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		}
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
