// internal/gateway/ambassadors.go
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"onboardhq.ug/internal/models"
)

type CreateAmbassadorRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Region string `json:"region"`
}

type UpdateAmbassadorRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type ambassadorListResponse struct {
	Ambassadors []models.Ambassador `json:"ambassadors"`
}

// Login authenticates by email. The backend decides the role; the portal only
// stores what it returns.
func (c *Client) Login(ctx context.Context, email string) (*models.SessionUser, error) {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}

	var user models.SessionUser
	if err := c.do(ctx, http.MethodPost, "/users/login", payload, "Login failed", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListAmbassadors(ctx context.Context) ([]models.Ambassador, error) {
	var resp ambassadorListResponse
	if err := c.do(ctx, http.MethodGet, "/users/ambassadors", nil, "Failed to fetch ambassadors", &resp); err != nil {
		return nil, err
	}
	return resp.Ambassadors, nil
}

func (c *Client) GetAmbassador(ctx context.Context, id string) (*models.Ambassador, error) {
	var amb models.Ambassador
	endpoint := "/users/ambassadors/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to fetch ambassador", &amb); err != nil {
		return nil, err
	}
	return &amb, nil
}

func (c *Client) CreateAmbassador(ctx context.Context, req CreateAmbassadorRequest) (*models.Ambassador, error) {
	var amb models.Ambassador
	if err := c.do(ctx, http.MethodPost, "/users/ambassadors", req, "Failed to create ambassador", &amb); err != nil {
		return nil, err
	}
	return &amb, nil
}

func (c *Client) UpdateAmbassador(ctx context.Context, id string, req UpdateAmbassadorRequest) (*models.Ambassador, error) {
	var amb models.Ambassador
	endpoint := "/users/ambassadors/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, endpoint, req, "Failed to update ambassador", &amb); err != nil {
		return nil, err
	}
	return &amb, nil
}

func (c *Client) DeleteAmbassador(ctx context.Context, id string) error {
	endpoint := "/users/ambassadors/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, endpoint, nil, "Failed to delete ambassador", nil)
}
