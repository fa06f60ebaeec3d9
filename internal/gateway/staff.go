// internal/gateway/staff.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"onboardhq.ug/internal/models"
)

// CreateStaffRequest is the explicit onboarding payload. Form data is
// validated and copied into this struct before submission; nothing loose is
// spread into request bodies.
type CreateStaffRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	AmbassadorID string `json:"ambassador_id"`
}

type UpdateStaffRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

type staffListResponse struct {
	Staff []models.StaffRecord `json:"staff"`
}

// Statistics is the backend's aggregated view, optionally scoped to one
// ambassador.
type Statistics struct {
	TotalStaff     int            `json:"total_staff"`
	ThisMonthCount int            `json:"this_month_count"`
	LastMonthCount int            `json:"last_month_count"`
	GrowthRate     float64        `json:"growth_rate"`
	ByDepartment   map[string]int `json:"by_department"`
}

// ListStaff fetches staff records, scoped to an ambassador when ambassadorID
// is non-empty.
func (c *Client) ListStaff(ctx context.Context, ambassadorID string) ([]models.StaffRecord, error) {
	endpoint := "/staff"
	if ambassadorID != "" {
		endpoint += "?ambassadorId=" + url.QueryEscape(ambassadorID)
	}
	var resp staffListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to fetch staff", &resp); err != nil {
		return nil, err
	}
	return resp.Staff, nil
}

func (c *Client) GetStaff(ctx context.Context, id string) (*models.StaffRecord, error) {
	var staff models.StaffRecord
	endpoint := "/staff/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to fetch staff member", &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *Client) CreateStaff(ctx context.Context, req CreateStaffRequest) (*models.StaffRecord, error) {
	var staff models.StaffRecord
	if err := c.do(ctx, http.MethodPost, "/staff", req, "Failed to create staff member", &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *Client) UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest) (*models.StaffRecord, error) {
	var staff models.StaffRecord
	endpoint := "/staff/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, endpoint, req, "Failed to update staff member", &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	endpoint := "/staff/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, endpoint, nil, "Failed to delete staff member", nil)
}

// SearchStaff runs a server-side search, optionally scoped to an ambassador.
func (c *Client) SearchStaff(ctx context.Context, query, ambassadorID string) ([]models.StaffRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	if ambassadorID != "" {
		params.Set("ambassadorId", ambassadorID)
	}
	var resp staffListResponse
	endpoint := "/staff/search?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to search staff", &resp); err != nil {
		return nil, err
	}
	return resp.Staff, nil
}

// FilterByDepartment asks the backend for one department's records.
func (c *Client) FilterByDepartment(ctx context.Context, department, ambassadorID string) ([]models.StaffRecord, error) {
	params := url.Values{}
	params.Set("department", department)
	if ambassadorID != "" {
		params.Set("ambassadorId", ambassadorID)
	}
	var resp staffListResponse
	endpoint := "/staff/filter?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to filter staff", &resp); err != nil {
		return nil, err
	}
	return resp.Staff, nil
}

// Statistics fetches the backend's aggregate counters.
func (c *Client) Statistics(ctx context.Context, ambassadorID string) (*Statistics, error) {
	endpoint := "/staff/statistics"
	if ambassadorID != "" {
		endpoint += "?ambassadorId=" + url.QueryEscape(ambassadorID)
	}
	var stats Statistics
	if err := c.do(ctx, http.MethodGet, endpoint, nil, "Failed to fetch statistics", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportURL builds the server-streamed CSV export URL. String construction
// only; no request is made.
func (c *Client) ExportURL(ambassadorID string) string {
	if ambassadorID != "" {
		return fmt.Sprintf("%s/staff/export?ambassadorId=%s", c.baseURL, url.QueryEscape(ambassadorID))
	}
	return c.baseURL + "/staff/export"
}
