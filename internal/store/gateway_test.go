package store

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

func newTestGateway() *Gateway {
	return NewGateway(NewMemoryKV())
}

func testSuperAdmin(t *testing.T, password string) domain.Identity {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return domain.Identity{
		ID:           "u1",
		Name:         "Rev. Admin",
		Email:        "admin@ecclesia.app",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
	}
}

func TestInitializationGating(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if g.IsInitialized(ctx) {
		t.Fatal("gateway reports initialized before InitSystem")
	}

	if err := g.InitSystem(ctx, testSuperAdmin(t, "s3cret")); err != nil {
		t.Fatalf("InitSystem: %v", err)
	}

	if !g.IsInitialized(ctx) {
		t.Fatal("gateway reports uninitialized after InitSystem")
	}

	cfg, err := g.Config(ctx)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg == nil || !cfg.IsInitialized || cfg.SuperAdminID != "u1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestInitSystemSeedsTenants(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.InitSystem(ctx, testSuperAdmin(t, "s3cret")); err != nil {
		t.Fatalf("InitSystem: %v", err)
	}

	tenants, err := g.GetTenants(ctx)
	if err != nil {
		t.Fatalf("GetTenants: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("seed tenant count = %d, want 2", len(tenants))
	}
	if tenants[0].Name != "Grace Community Church" || tenants[1].Name != "River Valley Chapel" {
		t.Fatalf("unexpected seed tenants: %q, %q", tenants[0].Name, tenants[1].Name)
	}

	users, err := g.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected seeded users: %+v", users)
	}
}

func TestMissingKeysReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	users, err := g.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers on empty store: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}

	tenants, err := g.GetTenants(ctx)
	if err != nil {
		t.Fatalf("GetTenants on empty store: %v", err)
	}
	if len(tenants) != 0 {
		t.Fatalf("expected no tenants, got %d", len(tenants))
	}
}

func TestSaveUserUpsertsByEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.SaveUser(ctx, domain.Identity{ID: "u1", Name: "First", Email: "Pastor@Grace.com"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if err := g.SaveUser(ctx, domain.Identity{ID: "u1", Name: "Renamed", Email: "pastor@grace.com"}); err != nil {
		t.Fatalf("SaveUser upsert: %v", err)
	}

	users, err := g.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("user count = %d, want 1 after case-differing upsert", len(users))
	}
	if users[0].Name != "Renamed" {
		t.Fatalf("upsert did not replace: %+v", users[0])
	}

	if err := g.SaveUser(ctx, domain.Identity{ID: "u2", Name: "Other", Email: "other@grace.com"}); err != nil {
		t.Fatalf("SaveUser new: %v", err)
	}
	users, _ = g.GetUsers(ctx)
	if len(users) != 2 {
		t.Fatalf("user count = %d, want 2 after distinct email", len(users))
	}
}

func TestVerifyLogin(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()
	admin := testSuperAdmin(t, "s3cret")
	if err := g.InitSystem(ctx, admin); err != nil {
		t.Fatalf("InitSystem: %v", err)
	}

	first, err := g.VerifyLogin(ctx, "ADMIN@ecclesia.app", "s3cret")
	if err != nil {
		t.Fatalf("VerifyLogin with correct password: %v", err)
	}
	second, err := g.VerifyLogin(ctx, "admin@ecclesia.app", "s3cret")
	if err != nil {
		t.Fatalf("VerifyLogin repeat: %v", err)
	}
	if first.ID != second.ID || first.Email != second.Email {
		t.Fatalf("repeated logins disagree: %+v vs %+v", first, second)
	}

	if _, err := g.VerifyLogin(ctx, "nobody@ecclesia.app", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := g.VerifyLogin(ctx, "admin@ecclesia.app", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyLoginRejectsEmptyHash(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.SaveUser(ctx, domain.Identity{ID: "u9", Email: "legacy@ecclesia.app"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if _, err := g.VerifyLogin(ctx, "legacy@ecclesia.app", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("identity without stored hash must not log in, got %v", err)
	}
}

func TestTenantRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	tenant := domain.Tenant{ID: "t9", Name: "New Hope Assembly", Slug: "new-hope", Status: domain.TenantStatusTrial}
	if err := g.AddTenant(ctx, tenant); err != nil {
		t.Fatalf("AddTenant: %v", err)
	}

	tenants, err := g.GetTenants(ctx)
	if err != nil {
		t.Fatalf("GetTenants: %v", err)
	}
	if len(tenants) != 1 || tenants[0].ID != "t9" {
		t.Fatalf("added tenant missing from list: %+v", tenants)
	}

	tenant.Status = domain.TenantStatusActive
	if err := g.UpdateTenant(ctx, tenant); err != nil {
		t.Fatalf("UpdateTenant: %v", err)
	}
	got, err := g.GetTenant(ctx, "t9")
	if err != nil {
		t.Fatalf("GetTenant: %v", err)
	}
	if got == nil || got.Status != domain.TenantStatusActive {
		t.Fatalf("update not visible: %+v", got)
	}

	if got, _ := g.GetTenant(ctx, "missing"); got != nil {
		t.Fatalf("GetTenant for unknown id = %+v, want nil", got)
	}
}

func TestUpdateTenantUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.UpdateTenant(ctx, domain.Tenant{ID: "ghost"}); err != nil {
		t.Fatalf("UpdateTenant unknown id: %v", err)
	}
	tenants, _ := g.GetTenants(ctx)
	if len(tenants) != 0 {
		t.Fatalf("no-op update added a tenant: %+v", tenants)
	}
}

func TestResetCompleteness(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.InitSystem(ctx, testSuperAdmin(t, "s3cret")); err != nil {
		t.Fatalf("InitSystem: %v", err)
	}
	if err := g.ResetSystem(ctx); err != nil {
		t.Fatalf("ResetSystem: %v", err)
	}

	if g.IsInitialized(ctx) {
		t.Fatal("initialized after reset")
	}
	if users, _ := g.GetUsers(ctx); len(users) != 0 {
		t.Fatalf("users survive reset: %+v", users)
	}
	if tenants, _ := g.GetTenants(ctx); len(tenants) != 0 {
		t.Fatalf("tenants survive reset: %+v", tenants)
	}
}

func TestInitSystemOverwritesPriorState(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway()

	if err := g.InitSystem(ctx, testSuperAdmin(t, "s3cret")); err != nil {
		t.Fatalf("InitSystem: %v", err)
	}
	if err := g.AddTenant(ctx, domain.Tenant{ID: "extra", Name: "Extra"}); err != nil {
		t.Fatalf("AddTenant: %v", err)
	}

	other := testSuperAdmin(t, "other")
	other.ID = "u2"
	other.Email = "second@ecclesia.app"
	if err := g.InitSystem(ctx, other); err != nil {
		t.Fatalf("second InitSystem: %v", err)
	}

	users, _ := g.GetUsers(ctx)
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("re-init did not overwrite users: %+v", users)
	}
	tenants, _ := g.GetTenants(ctx)
	if len(tenants) != 2 {
		t.Fatalf("re-init did not restore seed tenants: %+v", tenants)
	}
}
