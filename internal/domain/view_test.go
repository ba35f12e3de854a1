package domain

import "testing"

func TestParseView(t *testing.T) {
	for _, v := range Views {
		parsed, err := ParseView(string(v))
		if err != nil {
			t.Errorf("ParseView(%q): %v", v, err)
		}
		if parsed != v {
			t.Errorf("ParseView(%q) = %q", v, parsed)
		}
	}

	if _, err := ParseView("dashboard"); err == nil {
		t.Error("ParseView accepted lowercase identifier")
	}
	if _, err := ParseView(""); err == nil {
		t.Error("ParseView accepted empty identifier")
	}
}

func TestViewLabels(t *testing.T) {
	tests := []struct {
		view  View
		label string
	}{
		{ViewBulkSMS, "Communications"},
		{ViewSettings, "System & Security"},
		{ViewSoulTracking, "Track Soul"},
		{ViewSuperAdmin, "Super Admin"},
	}
	for _, tt := range tests {
		if got := tt.view.Label(); got != tt.label {
			t.Errorf("%s label = %q, want %q", tt.view, got, tt.label)
		}
	}

	for _, v := range Views {
		if v.Label() == "" {
			t.Errorf("%s has no label", v)
		}
	}
}

func TestViewValid(t *testing.T) {
	if View("BOGUS").Valid() {
		t.Error("unknown view reported valid")
	}
	for _, v := range Views {
		if !v.Valid() {
			t.Errorf("%s reported invalid", v)
		}
	}
}
