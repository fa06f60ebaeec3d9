// internal/gateway/admins.go
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"onboardhq.ug/internal/models"
)

type InviteAdminRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // admin | super
}

// CompleteAdminSetupRequest finishes an invitation: the token from the invite
// email plus the password the invitee chose.
type CompleteAdminSetupRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type adminListResponse struct {
	Admins []models.Admin `json:"admins"`
}

func (c *Client) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var resp adminListResponse
	if err := c.do(ctx, http.MethodGet, "/admins/all", nil, "Failed to fetch admins", &resp); err != nil {
		return nil, err
	}
	return resp.Admins, nil
}

// InviteAdmin creates a pending admin account; the backend emails the setup
// link. The portal never sends mail itself.
func (c *Client) InviteAdmin(ctx context.Context, req InviteAdminRequest) (*models.Admin, error) {
	var admin models.Admin
	if err := c.do(ctx, http.MethodPost, "/admins/invite", req, "Failed to send invitation", &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) CompleteAdminSetup(ctx context.Context, req CompleteAdminSetupRequest) error {
	return c.do(ctx, http.MethodPost, "/admins/setup-complete", req, "Setup link invalid or expired", nil)
}

// DeleteAdmin revokes all administrative access for the account.
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	endpoint := "/admins/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, endpoint, nil, "Failed to revoke admin access", nil)
}
