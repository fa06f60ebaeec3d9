// internal/models/admin.go
package models

import "time"

// Admin is a back-office account. Invited admins appear here immediately; they
// complete setup asynchronously through the emailed token link.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // admin | super
	CreatedAt time.Time `json:"created_at"`
}

type AdminInviteForm struct {
	Name  string `form:"name" validate:"required,alpha_space"`
	Email string `form:"email" validate:"required,email"`
	Role  string `form:"role" validate:"required,oneof=admin super"`
}
