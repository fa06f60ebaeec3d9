package reporting

import (
	"testing"

	"onboardhq.ug/internal/models"
)

func sampleStaff() []models.StaffRecord {
	return []models.StaffRecord{
		{ID: "s1", Name: "Grace Auma", Email: "grace@acme.ug", Position: "Sales Rep", Department: "Sales", AmbassadorID: "a1", OnboardedDate: "2024-11-03"},
		{ID: "s2", Name: "John Okello", Email: "john@acme.ug", Position: "Field Officer", Department: "Operations", AmbassadorID: "a1", OnboardedDate: "2024-11-20"},
		{ID: "s3", Name: "Mary Nankya", Email: "mary@acme.ug", Position: "Accountant", Department: "Finance", AmbassadorID: "a2", OnboardedDate: "2024-12-01"},
		{ID: "s4", Name: "Peter Ssali", Email: "peter@acme.ug", Position: "IT Support", Department: "IT", AmbassadorID: "a2", OnboardedDate: ""},
	}
}

func TestFilterStaffEmptySearchReturnsAll(t *testing.T) {
	staff := sampleStaff()
	got := FilterStaff(staff, FilterSpec{})
	if len(got) != len(staff) {
		t.Fatalf("got %d records, want %d", len(got), len(staff))
	}
	for i := range got {
		if got[i].ID != staff[i].ID {
			t.Errorf("record %d: order changed, got %s want %s", i, got[i].ID, staff[i].ID)
		}
	}
}

func TestFilterStaffSearchFields(t *testing.T) {
	staff := sampleStaff()
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by name case-insensitive", "grace", []string{"s1"}},
		{"by email", "mary@", []string{"s3"}},
		{"by position", "officer", []string{"s2"}},
		{"by department", "finance", []string{"s3"}},
		{"no match", "zzz", nil},
		{"matches several", "acme.ug", []string{"s1", "s2", "s3", "s4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterStaff(staff, FilterSpec{Search: tt.search})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("record %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterStaffAmbassadorScope(t *testing.T) {
	staff := sampleStaff()

	got := FilterStaff(staff, FilterSpec{AmbassadorID: "a1"})
	if len(got) != 2 {
		t.Fatalf("got %d records for a1, want 2", len(got))
	}

	// The sentinel disables scoping entirely.
	got = FilterStaff(staff, FilterSpec{AmbassadorID: AllAmbassadors})
	if len(got) != len(staff) {
		t.Fatalf("got %d records for %q, want %d", len(got), AllAmbassadors, len(staff))
	}
}

func TestFilterStaffDateRangeInclusive(t *testing.T) {
	staff := sampleStaff()

	got := FilterStaff(staff, FilterSpec{StartDate: "2024-11-03", EndDate: "2024-11-20"})
	// s4 has no date and must pass any range.
	wantIDs := []string{"s1", "s2", "s4"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d records, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("record %d: got %s, want %s", i, got[i].ID, id)
		}
	}

	got = FilterStaff(staff, FilterSpec{StartDate: "2024-12-02"})
	if len(got) != 1 || got[0].ID != "s4" {
		t.Fatalf("start after every dated record: got %v, want only the undated s4", got)
	}
}

func TestFilterStaffCombinesPredicates(t *testing.T) {
	staff := sampleStaff()
	got := FilterStaff(staff, FilterSpec{Search: "acme", AmbassadorID: "a2", StartDate: "2024-12-01"})
	wantIDs := []string{"s3", "s4"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d records, want %d", len(got), len(wantIDs))
	}
}

func TestVisibleTo(t *testing.T) {
	staff := sampleStaff()

	ambassador := &models.SessionUser{ID: "a1", Role: models.RoleAmbassador}
	got := VisibleTo(staff, ambassador)
	if len(got) != 2 {
		t.Fatalf("ambassador sees %d records, want 2", len(got))
	}
	for _, s := range got {
		if s.AmbassadorID != "a1" {
			t.Errorf("ambassador sees record %s owned by %s", s.ID, s.AmbassadorID)
		}
	}

	admin := &models.SessionUser{ID: "x", Role: models.RoleAdmin}
	if got := VisibleTo(staff, admin); len(got) != len(staff) {
		t.Fatalf("admin sees %d records, want %d", len(got), len(staff))
	}

	super := &models.SessionUser{ID: "y", Role: models.RoleSuper}
	if got := VisibleTo(staff, super); len(got) != len(staff) {
		t.Fatalf("super sees %d records, want %d", len(got), len(staff))
	}
}
