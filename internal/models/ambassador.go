// internal/models/ambassador.go
package models

// Regions an ambassador can be assigned to. Fixed set.
var Regions = []string{"Northern", "Central", "Western", "Eastern"}

// Ambassador is a field recruiter. TotalStaff is denormalized by the API.
type Ambassador struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Region     string `json:"region"`
	TotalStaff int    `json:"total_staff"`
}

type AmbassadorForm struct {
	Name   string `form:"name" validate:"required,alpha_space"`
	Email  string `form:"email" validate:"required,email"`
	Region string `form:"region" validate:"required,oneof=Northern Central Western Eastern"`
}

// AmbassadorUpdateForm edits name and region only; email is the login identity
// and never changes through the registry.
type AmbassadorUpdateForm struct {
	Name   string `form:"name" validate:"required,alpha_space"`
	Region string `form:"region" validate:"required,oneof=Northern Central Western Eastern"`
}
