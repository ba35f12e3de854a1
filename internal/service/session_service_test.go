package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/audit"
	"github.com/dtechsoftwares/ecclesiapro/internal/config"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/session"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// fixture wires the full in-memory stack: gateway, dispatcher, audit trail
// with recorder, session manager and the service under test.
type fixture struct {
	service *SessionService
	tenants *TenantService
	gateway *store.Gateway
	manager *session.Manager
	trail   *audit.Trail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gateway := store.NewGateway(store.NewMemoryKV())
	dispatcher := events.NewInMemoryDispatcher()
	trail := audit.NewTrail()
	NewAuditRecorder(dispatcher, trail, zap.NewNop()).RegisterHandlers()

	manager := session.NewManager(gateway, dispatcher, session.Delays{}, zap.NewNop())

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			SessionTTLMinutes: 60,
			BcryptCost:        4,
		},
	}
	svc := NewSessionService(cfg, SessionDependencies{
		Manager:    manager,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})

	return &fixture{
		service: svc,
		tenants: NewTenantService(gateway, dispatcher),
		gateway: gateway,
		manager: manager,
		trail:   trail,
	}
}

// onboard runs the first-boot flow and returns the signed-in controller.
func (f *fixture) onboard(t *testing.T) *session.Controller {
	t.Helper()
	state, _, _, err := f.service.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	ctrl, ok := f.manager.Get(state.SessionID)
	if !ok {
		t.Fatalf("session %q not registered", state.SessionID)
	}
	if _, err := f.service.CompleteOnboarding(context.Background(), ctrl, "Rev. Admin", "admin@ecclesia.app", "secret123", "127.0.0.1"); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	return ctrl
}

func (f *fixture) latestEntry(t *testing.T) domain.AuditEntry {
	t.Helper()
	entries := f.trail.Entries()
	if len(entries) == 0 {
		t.Fatal("audit trail is empty")
	}
	return entries[0]
}

func TestCreateSessionIssuesResolvableToken(t *testing.T) {
	f := newFixture(t)

	state, token, _, err := f.service.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := f.service.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SessionID != state.SessionID {
		t.Fatalf("token addresses %q, session is %q", claims.SessionID, state.SessionID)
	}
	if state.Render != session.RenderOnboarding {
		t.Fatalf("fresh system render = %v, want ONBOARDING", state.Render)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	state := ctrl.Snapshot()
	if state.Render != session.RenderSuperAdminHome {
		t.Fatalf("render after onboarding = %v, want SUPER_ADMIN_HOME", state.Render)
	}
	if state.Identity == nil || state.Identity.Role != domain.RoleSuperAdmin {
		t.Fatalf("onboarded identity = %+v", state.Identity)
	}
	if !f.gateway.IsInitialized(context.Background()) {
		t.Fatal("gateway not initialized after onboarding")
	}

	// The stored identity carries a hash; the returned copy must not.
	users, err := f.gateway.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].PasswordHash == "" {
		t.Fatalf("stored users = %+v", users)
	}

	entry := f.latestEntry(t)
	if entry.Action != "SYSTEM_INIT" || entry.Module != "SYSTEM" {
		t.Fatalf("latest audit entry = %+v, want SYSTEM_INIT/SYSTEM", entry)
	}
}

func TestOnboardingRejectedOnceInitialized(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	_, err := f.service.CompleteOnboarding(context.Background(), ctrl, "Other", "other@ecclesia.app", "pw", "127.0.0.1")
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("got %v, want ErrAlreadyInitialized", err)
	}
}

func TestLoginStampsLastLogin(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)
	if err := f.service.Logout(context.Background(), ctrl, true, "127.0.0.1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	identity, err := f.service.Login(context.Background(), ctrl, "ADMIN@ecclesia.app", "secret123", "10.0.0.5")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.PasswordHash != "" {
		t.Fatal("login response leaks password hash")
	}
	if identity.LastLogin == nil {
		t.Fatal("LastLogin not stamped")
	}

	users, err := f.gateway.GetUsers(context.Background())
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if len(users) != 1 || users[0].LastLogin == nil {
		t.Fatalf("stored users after login = %+v", users)
	}

	entry := f.latestEntry(t)
	if entry.Action != "LOGIN" || entry.Module != "AUTH" || entry.IPAddress != "10.0.0.5" {
		t.Fatalf("latest audit entry = %+v, want LOGIN/AUTH from 10.0.0.5", entry)
	}
}

func TestLoginFailureLeavesSessionUntouchedAndWarns(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)
	if err := f.service.Logout(context.Background(), ctrl, true, "127.0.0.1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err := f.service.Login(context.Background(), ctrl, "admin@ecclesia.app", "wrong", "127.0.0.1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if ctrl.Snapshot().Identity != nil {
		t.Fatal("failed login signed an identity in")
	}

	entry := f.latestEntry(t)
	if entry.Action != "LOGIN_FAILED" || entry.Severity != domain.SeverityWarning {
		t.Fatalf("latest audit entry = %+v, want LOGIN_FAILED at WARNING", entry)
	}
	if entry.UserID != "system" {
		t.Fatalf("failed login attributed to %q, want system", entry.UserID)
	}
}

func TestSelectTenantUnknownID(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	_, err := f.service.SelectTenant(context.Background(), ctrl, "nope", "127.0.0.1")
	if !errors.Is(err, store.ErrTenantNotFound) {
		t.Fatalf("got %v, want ErrTenantNotFound", err)
	}
}

func TestSelectSeededTenant(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	tenant, err := f.service.SelectTenant(context.Background(), ctrl, "t2", "127.0.0.1")
	if err != nil {
		t.Fatalf("SelectTenant: %v", err)
	}
	if tenant.Name != "River Valley Chapel" {
		t.Fatalf("tenant = %+v", tenant)
	}
	if got := ctrl.Snapshot().Render; got != session.RenderTenantShell {
		t.Fatalf("render while impersonating = %v, want TENANT_SHELL", got)
	}

	entry := f.latestEntry(t)
	if entry.Action != "ACCESS_TENANT" || entry.Details != "Super Admin accessed River Valley Chapel" {
		t.Fatalf("latest audit entry = %+v", entry)
	}
}

func TestResetGating(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	if err := f.service.Reset(context.Background(), ctrl, false, "127.0.0.1"); !errors.Is(err, session.ErrConfirmationRequired) {
		t.Fatalf("unconfirmed reset: got %v, want ErrConfirmationRequired", err)
	}
	if !f.gateway.IsInitialized(context.Background()) {
		t.Fatal("unconfirmed reset wiped the gateway")
	}
}

func TestResetRequiresSuperAdmin(t *testing.T) {
	f := newFixture(t)
	f.onboard(t)

	state, _, _, err := f.service.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	ctrl, _ := f.manager.Get(state.SessionID)
	tid := "t1"
	if err := ctrl.Login(context.Background(), domain.Identity{ID: "u2", Role: domain.RoleAdmin, TenantID: &tid}, "127.0.0.1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := f.service.Reset(context.Background(), ctrl, true, "127.0.0.1"); !errors.Is(err, session.ErrSuperAdminOnly) {
		t.Fatalf("got %v, want ErrSuperAdminOnly", err)
	}
}

func TestResetWipesStateAndDropsSessions(t *testing.T) {
	f := newFixture(t)
	ctrl := f.onboard(t)

	if err := f.service.Reset(context.Background(), ctrl, true, "127.0.0.1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if f.gateway.IsInitialized(context.Background()) {
		t.Fatal("gateway still initialized after reset")
	}
	tenants, err := f.gateway.GetTenants(context.Background())
	if err != nil {
		t.Fatalf("GetTenants: %v", err)
	}
	if len(tenants) != 0 {
		t.Fatalf("tenants survived reset: %+v", tenants)
	}
	if f.manager.Count() != 0 {
		t.Fatalf("live sessions after reset = %d, want 0", f.manager.Count())
	}

	entry := f.latestEntry(t)
	if entry.Action != "FACTORY_RESET" || entry.Severity != domain.SeverityCritical {
		t.Fatalf("latest audit entry = %+v, want FACTORY_RESET at CRITICAL", entry)
	}
}
