package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

func TestProvisionTenant(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)
	actor := ctrl.Snapshot().Identity

	tenant, err := f.tenants.Provision(context.Background(), actor, "  New Hope Fellowship  ", "admin@newhope.org", "555-0100", "12 Chapel St", "127.0.0.1")
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if tenant.Slug != "new-hope-fellowship" {
		t.Fatalf("slug = %q", tenant.Slug)
	}
	if tenant.Status != domain.TenantStatusTrial {
		t.Fatalf("status = %q, want TRIAL", tenant.Status)
	}
	if tenant.MemberCount != 0 || tenant.LastActive != "Just now" {
		t.Fatalf("tenant defaults = %+v", tenant)
	}

	// Seeded pair plus the new one.
	all, err := f.tenants.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("tenant count = %d, want 3", len(all))
	}

	entry := f.latestEntry(t)
	if entry.Action != "PROVISION_TENANT" || entry.Details != "Provisioned tenant New Hope Fellowship" {
		t.Fatalf("latest audit entry = %+v", entry)
	}
}

func TestProvisionRequiresName(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	_, err := f.tenants.Provision(context.Background(), ctrl.Snapshot().Identity, "   ", "", "", "", "127.0.0.1")
	if !errors.Is(err, ErrTenantNameRequired) {
		t.Fatalf("got %v, want ErrTenantNameRequired", err)
	}
}

func TestUpdateTenant(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)
	actor := ctrl.Snapshot().Identity

	existing, err := f.gateway.GetTenant(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTenant: %v", err)
	}
	existing.Status = domain.TenantStatusSuspended

	if _, err := f.tenants.Update(context.Background(), actor, *existing, "127.0.0.1"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, err := f.gateway.GetTenant(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTenant: %v", err)
	}
	if stored.Status != domain.TenantStatusSuspended {
		t.Fatalf("status = %q, want SUSPENDED", stored.Status)
	}
}

func TestUpdateUnknownTenant(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	_, err := f.tenants.Update(context.Background(), ctrl.Snapshot().Identity, domain.Tenant{ID: "missing"}, "127.0.0.1")
	if !errors.Is(err, store.ErrTenantNotFound) {
		t.Fatalf("got %v, want ErrTenantNotFound", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grace Community Church", "grace-community-church"},
		{"St. Mary's --- Parish", "st-mary-s-parish"},
		{"  UPPER  ", "upper"},
		{"already-slugged", "already-slugged"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
