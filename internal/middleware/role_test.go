package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"onboardhq.ug/internal/models"
)

func roleRequest(user *models.SessionUser) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if user != nil {
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		r = r.WithContext(ctx)
	}
	return r
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	called := false
	handler := RequireRole(models.RoleAdmin, models.RoleSuper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, role := range []string{models.RoleAdmin, models.RoleSuper} {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, roleRequest(&models.SessionUser{ID: "u1", Role: role}))
		if !called {
			t.Errorf("role %q: handler not reached", role)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("role %q: status = %d, want 200", role, rec.Code)
		}
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	handler := RequireRole(models.RoleAdmin, models.RoleSuper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached despite insufficient role")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, roleRequest(&models.SessionUser{ID: "u1", Role: models.RoleAmbassador}))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a user in context")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, roleRequest(nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
