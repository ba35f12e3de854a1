package audit

import (
	"testing"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

func TestTrailNewestFirst(t *testing.T) {
	trail := NewTrail()
	trail.Record(nil, "FIRST", "SYSTEM", "first", "127.0.0.1", domain.SeverityInfo)
	trail.Record(nil, "SECOND", "SYSTEM", "second", "127.0.0.1", domain.SeverityInfo)

	entries := trail.Entries()
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Action != "SECOND" || entries[1].Action != "FIRST" {
		t.Fatalf("order = %s, %s; want SECOND, FIRST", entries[0].Action, entries[1].Action)
	}
}

func TestRecordFillsIdentityAndDefaults(t *testing.T) {
	trail := NewTrail()

	entry := trail.Record(nil, "LOGIN_FAILED", "AUTH", "details", "127.0.0.1", domain.SeverityWarning)
	if entry.ID == "" || entry.Timestamp.IsZero() {
		t.Fatalf("entry missing id or timestamp: %+v", entry)
	}
	if entry.UserID != "system" || entry.UserName != "System" {
		t.Fatalf("nil actor entry = %+v, want system attribution", entry)
	}

	actor := &domain.Identity{ID: "u1", Name: "Rev. Admin"}
	entry = trail.Record(actor, "LOGIN", "AUTH", "details", "127.0.0.1", domain.SeverityInfo)
	if entry.UserID != "u1" || entry.UserName != "Rev. Admin" {
		t.Fatalf("actor entry = %+v", entry)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	trail := NewTrail()
	trail.Record(nil, "LOGIN", "AUTH", "details", "127.0.0.1", domain.SeverityInfo)

	entries := trail.Entries()
	entries[0].Action = "MUTATED"
	if trail.Entries()[0].Action != "LOGIN" {
		t.Fatal("Entries shares memory with the trail")
	}
}

func TestClear(t *testing.T) {
	trail := NewTrail()
	trail.Record(nil, "LOGIN", "AUTH", "details", "127.0.0.1", domain.SeverityInfo)
	trail.Clear()
	if trail.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", trail.Len())
	}
}
