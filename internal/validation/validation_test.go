package validation

import (
	"testing"

	"onboardhq.ug/internal/models"
)

func TestOnboardStaffFormValid(t *testing.T) {
	form := models.OnboardStaffForm{
		Name:       "Grace Auma",
		Email:      "grace@acme.ug",
		Phone:      "+256 700 111222",
		Position:   "Sales Rep",
		Department: "Sales",
	}
	if errs := ValidateStruct(form); errs != nil {
		t.Errorf("valid form rejected: %v", errs)
	}
}

func TestOnboardStaffFormErrorsKeyedByFormName(t *testing.T) {
	form := models.OnboardStaffForm{
		Name:  "Grace123",
		Email: "not-an-email",
		Phone: "0700111222",
	}
	errs := ValidateStruct(form)
	if errs == nil {
		t.Fatal("invalid form accepted")
	}
	for _, field := range []string{"name", "email", "phone", "position", "department"} {
		if errs.Get(field) == "" {
			t.Errorf("no error recorded for field %q: %v", field, errs)
		}
	}
}

func TestAmbassadorFormRegionOneOf(t *testing.T) {
	form := models.AmbassadorForm{Name: "Alice Abo", Email: "alice@acme.ug", Region: "Atlantis"}
	errs := ValidateStruct(form)
	if errs == nil || errs.Get("region") == "" {
		t.Fatalf("unknown region accepted: %v", errs)
	}

	form.Region = "Northern"
	if errs := ValidateStruct(form); errs != nil {
		t.Errorf("valid region rejected: %v", errs)
	}
}

func TestAdminInviteFormRole(t *testing.T) {
	form := models.AdminInviteForm{Name: "Root Admin", Email: "root@acme.ug", Role: "owner"}
	errs := ValidateStruct(form)
	if errs == nil || errs.Get("role") == "" {
		t.Fatalf("unknown role accepted: %v", errs)
	}

	for _, role := range []string{"admin", "super"} {
		form.Role = role
		if errs := ValidateStruct(form); errs != nil {
			t.Errorf("role %q rejected: %v", role, errs)
		}
	}
}

func TestSetupPasswordForm(t *testing.T) {
	form := models.SetupPasswordForm{
		Token:       "tok",
		Password:    "Str0ng!pass",
		ConfirmPass: "Str0ng!pass",
	}
	if errs := ValidateStruct(form); errs != nil {
		t.Errorf("valid form rejected: %v", errs)
	}

	form.ConfirmPass = "different"
	errs := ValidateStruct(form)
	if errs == nil || errs.Get("confirm_password") == "" {
		t.Errorf("mismatched confirmation accepted: %v", errs)
	}

	form.Password = "lettersonly"
	form.ConfirmPass = "lettersonly"
	errs = ValidateStruct(form)
	if errs == nil || errs.Get("password") == "" {
		t.Errorf("non-complex password accepted: %v", errs)
	}
}

func TestValidateAlphaSpace(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Grace Auma", true},
		{"Anna-Marie", true},
		{"Nakato Ssemwogerere", true},
		{"Grace123", false},
		{"DROP TABLE;", false},
	}
	for _, tt := range tests {
		if got := ValidateAlphaSpace(tt.value); got != tt.want {
			t.Errorf("ValidateAlphaSpace(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
