package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onboardhq.ug/internal/models"

	"github.com/alexedwards/scs/v2"
)

func newSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = time.Hour
	return sm
}

func TestSessionUserRoundTrip(t *testing.T) {
	sm := newSessionManager()

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := &models.SessionUser{ID: "u1", Name: "Alice", Email: "alice@acme.ug", Role: models.RoleAdmin}
		StoreUserInSession(sm, r.Context(), user)

		got := UserFromSession(sm, r.Context())
		if got == nil {
			t.Fatal("UserFromSession returned nil after store")
		}
		if *got != *user {
			t.Errorf("round trip = %+v, want %+v", got, user)
		}

		ClearUserFromSession(sm, r.Context())
		if got := UserFromSession(sm, r.Context()); got != nil {
			t.Errorf("user still present after clear: %+v", got)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRequireAuthenticationRedirectsAnonymous(t *testing.T) {
	sm := newSessionManager()
	handler := sm.LoadAndSave(RequireAuthentication(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without authentication")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestInjectUserDataAnonymous(t *testing.T) {
	sm := newSessionManager()
	handler := sm.LoadAndSave(InjectUserData(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAuth, _ := r.Context().Value(IsAuthenticatedContextKey).(bool)
		if isAuth {
			t.Error("anonymous request flagged as authenticated")
		}
		if user, _ := r.Context().Value(UserContextKey).(*models.SessionUser); user != nil {
			t.Errorf("unexpected user in context: %+v", user)
		}
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
