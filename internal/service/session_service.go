package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/config"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/session"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// ErrInvalidCredentials is surfaced to callers on a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAlreadyInitialized rejects onboarding once the system has a config record.
var ErrAlreadyInitialized = errors.New("system already initialized")

// SessionService coordinates session lifecycle, onboarding, login and the
// shell transitions between the HTTP layer, the session manager and the
// persistence gateway.
type SessionService struct {
	manager    *session.Manager
	gateway    *store.Gateway
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// SessionDependencies bundles what the service needs.
type SessionDependencies struct {
	Manager    *session.Manager
	Gateway    *store.Gateway
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(cfg config.Config, deps SessionDependencies) *SessionService {
	return &SessionService{
		manager:    deps.Manager,
		gateway:    deps.Gateway,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateSession registers a fresh session, kicks off its boot sequence and
// issues the bearer token that addresses it.
func (s *SessionService) CreateSession(ctx context.Context) (session.State, string, time.Time, error) {
	ctrl := s.manager.Create(ctx)
	token, exp, err := s.tokens.GenerateToken(ctrl.ID())
	if err != nil {
		s.manager.Drop(ctrl.ID())
		return session.State{}, "", time.Time{}, err
	}
	return ctrl.Snapshot(), token, exp, nil
}

// CompleteOnboarding creates the first super admin, initializes the system
// through the gateway and signs the new identity into this session.
func (s *SessionService) CompleteOnboarding(ctx context.Context, ctrl *session.Controller, name, email, password, ip string) (*domain.Identity, error) {
	if s.gateway.IsInitialized(ctx) {
		return nil, ErrAlreadyInitialized
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	superAdmin := domain.Identity{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Avatar:       "https://ui-avatars.com/api/?name=" + name,
	}

	if err := s.gateway.InitSystem(ctx, superAdmin); err != nil {
		return nil, err
	}
	ctrl.CompleteOnboarding(superAdmin)

	s.publish(ctx, events.EventSystemInitialized, &superAdmin, ip, events.SystemPayload{
		Detail: "System initialized successfully",
	})

	safe := superAdmin
	safe.PasswordHash = ""
	return &safe, nil
}

// Login verifies credentials against the gateway, stamps the identity's
// last-login time and routes the session by role. Failures publish a
// warning-level audit event and change no session state.
func (s *SessionService) Login(ctx context.Context, ctrl *session.Controller, email, password, ip string) (*domain.Identity, error) {
	identity, err := s.gateway.VerifyLogin(ctx, email, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			s.publish(ctx, events.EventLoginFailed, nil, ip, events.LoginPayload{Email: email})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now().UTC()
	identity.LastLogin = &now
	if err := s.gateway.SaveUser(ctx, *identity); err != nil {
		s.logger.Warn("failed to stamp last login", zap.Error(err))
	}

	if err := ctrl.Login(ctx, *identity, ip); err != nil {
		return nil, err
	}

	safe := *identity
	safe.PasswordHash = ""
	return &safe, nil
}

// Logout ends the authenticated part of the session. The confirmation flag
// mirrors the shell's sign-out prompt.
func (s *SessionService) Logout(ctx context.Context, ctrl *session.Controller, confirmed bool, ip string) error {
	return ctrl.Logout(ctx, confirmed, ip)
}

// Navigate requests a view transition on the session.
func (s *SessionService) Navigate(ctx context.Context, ctrl *session.Controller, view domain.View, ip string) error {
	return ctrl.Navigate(ctx, view, ip)
}

// SelectTenant looks the tenant up and begins impersonating it.
func (s *SessionService) SelectTenant(ctx context.Context, ctrl *session.Controller, tenantID, ip string) (*domain.Tenant, error) {
	tenant, err := s.gateway.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, store.ErrTenantNotFound
	}
	if err := ctrl.SelectTenant(ctx, *tenant, ip); err != nil {
		return nil, err
	}
	return tenant, nil
}

// ReturnToSuperAdmin leaves impersonation mode.
func (s *SessionService) ReturnToSuperAdmin(ctx context.Context, ctrl *session.Controller) error {
	return ctrl.ReturnToSuperAdmin(ctx)
}

// Reset wipes all persisted state and drops every live session, forcing the
// equivalent of a full application reload. Super admin only, confirm-gated.
func (s *SessionService) Reset(ctx context.Context, ctrl *session.Controller, confirmed bool, ip string) error {
	if !confirmed {
		return session.ErrConfirmationRequired
	}

	state := ctrl.Snapshot()
	if state.Identity == nil {
		return session.ErrNotAuthenticated
	}
	if state.Identity.Role != domain.RoleSuperAdmin {
		return session.ErrSuperAdminOnly
	}

	if err := s.gateway.ResetSystem(ctx); err != nil {
		return err
	}

	s.publish(ctx, events.EventSystemReset, state.Identity, ip, events.SystemPayload{
		Detail: "Factory reset: all collections wiped",
	})
	s.manager.DropAll()
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, actor *domain.Identity, ip string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Identity: actor, IPAddress: ip},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
