// internal/reporting/filter.go
package reporting

import (
	"strings"

	"onboardhq.ug/internal/models"
)

// AllAmbassadors is the FilterSpec sentinel that disables ambassador scoping.
const AllAmbassadors = "all"

// FilterSpec is the transient filter state owned by a view controller. It is
// rebuilt from the request on every page load and never persisted.
type FilterSpec struct {
	Search       string
	AmbassadorID string // AllAmbassadors or a specific ambassador id
	StartDate    string // inclusive, YYYY-MM-DD; empty = unbounded
	EndDate      string // inclusive, YYYY-MM-DD; empty = unbounded
}

// VisibleTo applies role-based visibility before any explicit filtering: an
// ambassador only ever sees records they own, admins see everything.
func VisibleTo(records []models.StaffRecord, user *models.SessionUser) []models.StaffRecord {
	if user == nil || user.Role != models.RoleAmbassador {
		return records
	}
	visible := make([]models.StaffRecord, 0, len(records))
	for _, s := range records {
		if s.AmbassadorID == user.ID {
			visible = append(visible, s)
		}
	}
	return visible
}

// FilterStaff returns the subset of records matching every active predicate of
// spec. Predicates are pure and ANDed, so evaluation order is irrelevant.
// Input order is preserved; no pagination.
func FilterStaff(records []models.StaffRecord, spec FilterSpec) []models.StaffRecord {
	out := make([]models.StaffRecord, 0, len(records))
	for _, s := range records {
		if !matchesSearch(s, spec.Search) {
			continue
		}
		if spec.AmbassadorID != "" && spec.AmbassadorID != AllAmbassadors && s.AmbassadorID != spec.AmbassadorID {
			continue
		}
		if !inDateRange(s.OnboardedDate, spec.StartDate, spec.EndDate) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesSearch is a case-insensitive substring match over name, email,
// position and department. An empty term matches everything.
func matchesSearch(s models.StaffRecord, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Name), needle) ||
		strings.Contains(strings.ToLower(s.Email), needle) ||
		strings.Contains(strings.ToLower(s.Position), needle) ||
		strings.Contains(strings.ToLower(s.Department), needle)
}

// inDateRange compares ISO day-precision dates lexically, inclusive at both
// ends. A record without an onboarded date always passes: a missing date must
// never exclude a record from a drill-down.
func inDateRange(date, start, end string) bool {
	if date == "" {
		return true
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
