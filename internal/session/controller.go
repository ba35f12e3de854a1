package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// BootPhase tracks the one-time startup sequence of a session.
type BootPhase string

const (
	PhaseSplash    BootPhase = "SPLASH"
	PhaseCheckInit BootPhase = "CHECK_INIT"
)

// RenderTarget is what the shell should show for the current session state.
type RenderTarget string

const (
	RenderSplash         RenderTarget = "SPLASH"
	RenderOnboarding     RenderTarget = "ONBOARDING"
	RenderLogin          RenderTarget = "LOGIN"
	RenderAccessDenied   RenderTarget = "ACCESS_DENIED"
	RenderSuperAdminHome RenderTarget = "SUPER_ADMIN_HOME"
	RenderTenantShell    RenderTarget = "TENANT_SHELL"
)

var (
	// ErrTransitionInFlight rejects a transition while another is running.
	// The shell overlays interaction while navigating, so only one
	// transition is ever in flight per session.
	ErrTransitionInFlight = errors.New("session: transition already in flight")

	// ErrConfirmationRequired gates destructive actions behind an explicit yes.
	ErrConfirmationRequired = errors.New("session: confirmation required")

	// ErrSuperAdminOnly rejects tenant impersonation by other roles.
	ErrSuperAdminOnly = errors.New("session: super admin only")

	// ErrNotAuthenticated rejects shell operations before login.
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrInvalidView rejects navigation to an unknown view identifier.
	ErrInvalidView = errors.New("session: invalid view")
)

// Delays configure the simulated latency of shell transitions. Zero values
// apply transitions synchronously, which tests rely on.
type Delays struct {
	Boot         time.Duration
	Navigate     time.Duration
	TenantSwitch time.Duration
	Return       time.Duration
}

// State is a point-in-time copy of a controller's observable state.
type State struct {
	SessionID    string
	Phase        BootPhase
	Initialized  bool
	Identity     *domain.Identity
	ActiveView   domain.View
	ActiveTenant *domain.Tenant
	Navigating   bool
	MenuOpen     bool
	Render       RenderTarget
}

// Controller owns the navigation state machine for one browser session:
// who is logged in, which view is shown, which tenant a super admin is
// impersonating, and whether a transition is in flight.
type Controller struct {
	id         string
	gateway    *store.Gateway
	dispatcher events.Dispatcher
	delays     Delays

	mu           sync.Mutex
	phase        BootPhase
	initialized  bool
	identity     *domain.Identity
	activeView   domain.View
	activeTenant *domain.Tenant
	menuOpen     bool
	transition   *transition
}

type transition struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController builds a controller in the splash phase. Boot must be called
// (once) to leave it.
func NewController(gateway *store.Gateway, dispatcher events.Dispatcher, delays Delays) *Controller {
	return &Controller{
		id:         uuid.NewString(),
		gateway:    gateway,
		dispatcher: dispatcher,
		delays:     delays,
		phase:      PhaseSplash,
		activeView: domain.ViewDashboard,
	}
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Boot waits the configured splash delay, then reads the initialization flag
// from the gateway. A failed read counts as "not initialized"; there is no
// retry. Boot blocks and is expected to run on its own goroutine when a
// delay is configured.
func (c *Controller) Boot(ctx context.Context) {
	if c.delays.Boot > 0 {
		timer := time.NewTimer(c.delays.Boot)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	initialized := c.gateway.IsInitialized(ctx)

	c.mu.Lock()
	c.initialized = initialized
	c.phase = PhaseCheckInit
	c.mu.Unlock()
}

// Login installs the verified identity and routes by role: super admins land
// on the provisioning console, everyone else on the dashboard.
func (c *Controller) Login(ctx context.Context, identity domain.Identity, ip string) error {
	c.mu.Lock()
	id := identity
	c.identity = &id
	if identity.Role == domain.RoleSuperAdmin {
		c.activeView = domain.ViewSuperAdmin
	} else {
		c.activeView = domain.ViewDashboard
	}
	c.mu.Unlock()

	c.publish(ctx, events.EventLoginSucceeded, &identity, ip, events.LoginPayload{Email: identity.Email})
	return nil
}

// Logout clears the identity and any impersonated tenant. It requires the
// caller's explicit confirmation and cancels an in-flight transition.
func (c *Controller) Logout(ctx context.Context, confirmed bool, ip string) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	c.mu.Lock()
	if c.transition != nil {
		c.transition.cancel()
		c.transition = nil
	}
	actor := c.identity
	c.identity = nil
	c.activeTenant = nil
	c.activeView = domain.ViewDashboard
	c.menuOpen = false
	c.mu.Unlock()

	if actor == nil {
		return ErrNotAuthenticated
	}
	c.publish(ctx, events.EventLoggedOut, actor, ip, nil)
	return nil
}

// CompleteOnboarding marks the session initialized with the freshly created
// super admin signed in and the provisioning console active. The gateway
// write has already happened by the time this runs.
func (c *Controller) CompleteOnboarding(superAdmin domain.Identity) {
	c.mu.Lock()
	id := superAdmin
	c.initialized = true
	c.phase = PhaseCheckInit
	c.identity = &id
	c.activeView = domain.ViewSuperAdmin
	c.mu.Unlock()
}

// Navigate moves the shell to the requested view. Navigating to the current
// view only closes the mobile menu: no transition, no audit entry.
func (c *Controller) Navigate(ctx context.Context, view domain.View, ip string) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidView, string(view))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		return ErrNotAuthenticated
	}
	if c.activeView == view {
		c.menuOpen = false
		return nil
	}

	actor := c.identity
	return c.startTransition(c.delays.Navigate, func() {
		c.activeView = view
		c.menuOpen = false
		c.publish(ctx, events.EventViewNavigated, actor, ip, events.NavigationPayload{View: view})
	})
}

// SelectTenant begins impersonating the given tenant. Only a super admin may
// do this; the tenant is copied, never shared.
func (c *Controller) SelectTenant(ctx context.Context, tenant domain.Tenant, ip string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		return ErrNotAuthenticated
	}
	if c.identity.Role != domain.RoleSuperAdmin {
		return ErrSuperAdminOnly
	}

	actor := c.identity
	return c.startTransition(c.delays.TenantSwitch, func() {
		t := tenant
		c.activeTenant = &t
		c.activeView = domain.ViewDashboard
		c.publish(ctx, events.EventTenantAccessed, actor, ip, events.TenantPayload{
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
		})
	})
}

// ReturnToSuperAdmin leaves impersonation and restores the provisioning
// console, with the same transient-loading pattern as SelectTenant.
func (c *Controller) ReturnToSuperAdmin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		return ErrNotAuthenticated
	}
	if c.identity.Role != domain.RoleSuperAdmin {
		return ErrSuperAdminOnly
	}

	return c.startTransition(c.delays.Return, func() {
		c.activeTenant = nil
		c.activeView = domain.ViewSuperAdmin
	})
}

// OpenMenu marks the mobile navigation menu open.
func (c *Controller) OpenMenu() {
	c.mu.Lock()
	c.menuOpen = true
	c.mu.Unlock()
}

// Navigating reports whether a transition is in flight.
func (c *Controller) Navigating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition != nil
}

// Shutdown cancels any in-flight transition.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.transition != nil {
		c.transition.cancel()
		c.transition = nil
	}
	c.mu.Unlock()
}

// Snapshot returns a copy of the observable session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		SessionID:   c.id,
		Phase:       c.phase,
		Initialized: c.initialized,
		ActiveView:  c.activeView,
		Navigating:  c.transition != nil,
		MenuOpen:    c.menuOpen,
		Render:      c.renderLocked(),
	}
	if c.identity != nil {
		id := *c.identity
		id.PasswordHash = ""
		state.Identity = &id
	}
	if c.activeTenant != nil {
		t := *c.activeTenant
		state.ActiveTenant = &t
	}
	return state
}

// Render resolves the screen the shell should show. Rendering the super
// admin console without the SUPER_ADMIN role yields an access-denied
// placeholder, never content.
func (c *Controller) Render() RenderTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

func (c *Controller) renderLocked() RenderTarget {
	switch {
	case c.phase == PhaseSplash:
		return RenderSplash
	case !c.initialized:
		return RenderOnboarding
	case c.identity == nil:
		return RenderLogin
	}

	if c.activeView == domain.ViewSuperAdmin {
		if c.identity.Role != domain.RoleSuperAdmin {
			return RenderAccessDenied
		}
		return RenderSuperAdminHome
	}
	return RenderTenantShell
}

// startTransition runs apply after the configured delay, flagging the
// session as navigating until it lands. A zero delay applies synchronously.
// Callers must hold c.mu.
func (c *Controller) startTransition(delay time.Duration, apply func()) error {
	if c.transition != nil {
		return ErrTransitionInFlight
	}

	if delay <= 0 {
		apply()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &transition{cancel: cancel, done: make(chan struct{})}
	c.transition = t

	go func() {
		defer close(t.done)
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.transition == t {
				c.transition = nil
			}
			c.mu.Unlock()
		case <-timer.C:
			c.mu.Lock()
			apply()
			if c.transition == t {
				c.transition = nil
			}
			c.mu.Unlock()
		}
	}()
	return nil
}

// WaitIdle blocks until the in-flight transition, if any, has landed or been
// cancelled.
func (c *Controller) WaitIdle() {
	c.mu.Lock()
	t := c.transition
	c.mu.Unlock()
	if t != nil {
		<-t.done
	}
}

func (c *Controller) publish(ctx context.Context, eventType events.EventType, actor *domain.Identity, ip string, payload interface{}) {
	if c.dispatcher == nil {
		return
	}
	var identity *domain.Identity
	if actor != nil {
		id := *actor
		id.PasswordHash = ""
		identity = &id
	}
	_ = c.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Identity: identity, IPAddress: ip},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
