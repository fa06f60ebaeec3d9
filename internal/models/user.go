// internal/models/user.go
package models

// Role names as the onboarding API reports them.
const (
	RoleAmbassador string = "ambassador"
	RoleAdmin      string = "admin"
	RoleSuper      string = "super"
)

// SessionUser is the authenticated identity returned by POST /users/login and
// kept in the server-side session. The portal never stores credentials; the
// backend owns them.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may see the admin area. Super admins are
// admins with the extra right to manage other admin accounts.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleSuper)
}

func (u *SessionUser) IsSuper() bool {
	return u != nil && u.Role == RoleSuper
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Honeypot string `form:"website"`
}

// SetupPasswordForm completes an admin invitation: the invite email carries a
// token, the invitee picks a password, and the backend activates the account.
type SetupPasswordForm struct {
	Token       string `form:"token" validate:"required"`
	Password    string `form:"password" validate:"required,min=8,complex_password"`
	ConfirmPass string `form:"confirm_password" validate:"required,eqfield=Password"`
}
