package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLoginSuccess(t *testing.T) {
	var gotPath, gotRequestID string
	var gotBody map[string]string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "name": "Alice", "email": "alice@acme.ug", "role": "ambassador",
		})
	})
	defer server.Close()

	user, err := client.Login(context.Background(), "alice@acme.ug")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotPath != "/users/login" {
		t.Errorf("path = %s, want /users/login", gotPath)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotBody["email"] != "alice@acme.ug" {
		t.Errorf("request email = %q, want alice@acme.ug", gotBody["email"])
	}
	if user.ID != "u1" || user.Role != "ambassador" {
		t.Errorf("user = %+v, want id u1 role ambassador", user)
	}
}

func TestBackendErrorMessageSurfaced(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "user not found"})
	})
	defer server.Close()

	_, err := client.Login(context.Background(), "nobody@acme.ug")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "user not found" {
		t.Errorf("Message = %q, want the backend's message", apiErr.Message)
	}
}

func TestFallbackMessageWhenBodyUnusable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway timeout</html>"))
	})
	defer server.Close()

	_, err := client.ListStaff(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "Failed to fetch staff" {
		t.Errorf("Message = %q, want the operation fallback", apiErr.Message)
	}
}

func TestListStaffEnvelopeAndScoping(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"staff":[{"id":"s1","name":"Grace"},{"id":"s2","name":"John"}]}`))
	})
	defer server.Close()

	staff, err := client.ListStaff(context.Background(), "a 1")
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if gotQuery != "ambassadorId=a+1" {
		t.Errorf("query = %q, want ambassadorId=a+1", gotQuery)
	}
	if len(staff) != 2 || staff[0].ID != "s1" {
		t.Errorf("staff = %+v, want 2 records from the envelope", staff)
	}
}

func TestListAmbassadorsEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/ambassadors" {
			t.Errorf("path = %s, want /users/ambassadors", r.URL.Path)
		}
		w.Write([]byte(`{"ambassadors":[{"id":"a1","name":"Alice","total_staff":7}]}`))
	})
	defer server.Close()

	ambs, err := client.ListAmbassadors(context.Background())
	if err != nil {
		t.Fatalf("ListAmbassadors: %v", err)
	}
	if len(ambs) != 1 || ambs[0].TotalStaff != 7 {
		t.Errorf("ambassadors = %+v, want one with total_staff 7", ambs)
	}
}

func TestListAdminsEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admins/all" {
			t.Errorf("path = %s, want /admins/all", r.URL.Path)
		}
		w.Write([]byte(`{"admins":[{"id":"ad1","name":"Root","role":"super"}]}`))
	})
	defer server.Close()

	admins, err := client.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 1 || admins[0].Role != "super" {
		t.Errorf("admins = %+v, want one super admin", admins)
	}
}

func TestCreateStaffSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody CreateStaffRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"s9","name":"Grace"}`))
	})
	defer server.Close()

	created, err := client.CreateStaff(context.Background(), CreateStaffRequest{
		Name: "Grace", Email: "g@acme.ug", AmbassadorID: "a1",
	})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody.AmbassadorID != "a1" {
		t.Errorf("body ambassador_id = %q, want a1", gotBody.AmbassadorID)
	}
	if created.ID != "s9" {
		t.Errorf("created.ID = %s, want s9", created.ID)
	}
}

func TestDeleteStaffMethodAndPath(t *testing.T) {
	var gotMethod, gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.DeleteStaff(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteStaff: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/staff/s1" {
		t.Errorf("request = %s %s, want DELETE /staff/s1", gotMethod, gotPath)
	}
}

func TestCompleteAdminSetup(t *testing.T) {
	var gotBody CompleteAdminSetupRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admins/setup-complete" {
			t.Errorf("path = %s, want /admins/setup-complete", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	err := client.CompleteAdminSetup(context.Background(), CompleteAdminSetupRequest{
		Token: "tok123", Password: "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("CompleteAdminSetup: %v", err)
	}
	if gotBody.Token != "tok123" {
		t.Errorf("body token = %q, want tok123", gotBody.Token)
	}
}

func TestStatisticsDecoding(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_staff":42,"this_month_count":6,"last_month_count":2,"growth_rate":200,"by_department":{"Sales":20}}`))
	})
	defer server.Close()

	stats, err := client.Statistics(context.Background(), "")
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalStaff != 42 || stats.GrowthRate != 200 || stats.ByDepartment["Sales"] != 20 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExportURL(t *testing.T) {
	client := NewClient("http://api.local/api", time.Second)

	if got := client.ExportURL(""); got != "http://api.local/api/staff/export" {
		t.Errorf("unscoped = %s", got)
	}
	if got := client.ExportURL("a 1"); got != "http://api.local/api/staff/export?ambassadorId=a+1" {
		t.Errorf("scoped = %s", got)
	}
}

func TestUpdateStaffMethodAndPath(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody UpdateStaffRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"s1","position":"Team Lead"}`))
	})
	defer server.Close()

	updated, err := client.UpdateStaff(context.Background(), "s1", UpdateStaffRequest{Position: "Team Lead"})
	if err != nil {
		t.Fatalf("UpdateStaff: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/staff/s1" {
		t.Errorf("request = %s %s, want PUT /staff/s1", gotMethod, gotPath)
	}
	if gotBody.Position != "Team Lead" || updated.Position != "Team Lead" {
		t.Errorf("position round trip failed: body %q, response %q", gotBody.Position, updated.Position)
	}
}

func TestFilterByDepartmentQuery(t *testing.T) {
	var gotDept, gotAmb string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotDept = r.URL.Query().Get("department")
		gotAmb = r.URL.Query().Get("ambassadorId")
		w.Write([]byte(`{"staff":[{"id":"s1","department":"Sales"}]}`))
	})
	defer server.Close()

	staff, err := client.FilterByDepartment(context.Background(), "Sales", "a1")
	if err != nil {
		t.Fatalf("FilterByDepartment: %v", err)
	}
	if gotDept != "Sales" || gotAmb != "a1" {
		t.Errorf("query = department=%q ambassadorId=%q", gotDept, gotAmb)
	}
	if len(staff) != 1 || staff[0].Department != "Sales" {
		t.Errorf("staff = %+v", staff)
	}
}

func TestSearchStaffQuery(t *testing.T) {
	var gotQ, gotAmb string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotAmb = r.URL.Query().Get("ambassadorId")
		w.Write([]byte(`{"staff":[]}`))
	})
	defer server.Close()

	if _, err := client.SearchStaff(context.Background(), "grace", "a1"); err != nil {
		t.Fatalf("SearchStaff: %v", err)
	}
	if gotQ != "grace" || gotAmb != "a1" {
		t.Errorf("query = q=%q ambassadorId=%q", gotQ, gotAmb)
	}
}
