// internal/models/staff.go
package models

// Departments recognized for the breakdown widgets. The filter layer tolerates
// arbitrary department strings; this list only drives form selects.
var Departments = []string{
	"Sales",
	"Marketing",
	"Operations",
	"Customer Service",
	"IT",
	"Finance",
	"HR",
}

// StaffRecord is a staff member registered under an ambassador. Records are
// immutable value snapshots per fetch cycle; mutation happens through the API.
type StaffRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	AmbassadorID   string `json:"ambassador_id"`
	AmbassadorName string `json:"ambassador_name"`
	// OnboardedDate is day precision, ISO YYYY-MM-DD. May be empty for
	// records created before the field existed.
	OnboardedDate string `json:"onboarded_date"`
}

type OnboardStaffForm struct {
	Name       string `form:"name" validate:"required,alpha_space"`
	Email      string `form:"email" validate:"required,email"`
	Phone      string `form:"phone" validate:"required,valid_phone"`
	Position   string `form:"position" validate:"required"`
	Department string `form:"department" validate:"required"`
}
