package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// Manager owns the live session controllers, keyed by session id. Each
// browser tab of the original app becomes one controller here.
type Manager struct {
	gateway    *store.Gateway
	dispatcher events.Dispatcher
	delays     Delays
	logger     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Controller
}

// NewManager builds an empty registry.
func NewManager(gateway *store.Gateway, dispatcher events.Dispatcher, delays Delays, logger *zap.Logger) *Manager {
	return &Manager{
		gateway:    gateway,
		dispatcher: dispatcher,
		delays:     delays,
		logger:     logger,
		sessions:   make(map[string]*Controller),
	}
}

// Create registers a new session and starts its boot sequence. With a boot
// delay configured the splash phase resolves in the background; without one
// it resolves before Create returns.
func (m *Manager) Create(ctx context.Context) *Controller {
	ctrl := NewController(m.gateway, m.dispatcher, m.delays)

	m.mu.Lock()
	m.sessions[ctrl.ID()] = ctrl
	m.mu.Unlock()

	if m.delays.Boot > 0 {
		go ctrl.Boot(context.WithoutCancel(ctx))
	} else {
		ctrl.Boot(ctx)
	}

	m.logger.Info("session created", zap.String("session_id", ctrl.ID()))
	return ctrl
}

// Get returns the controller for a session id.
func (m *Manager) Get(id string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctrl, ok := m.sessions[id]
	return ctrl, ok
}

// Drop removes one session, cancelling any in-flight transition.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	ctrl, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		ctrl.Shutdown()
	}
}

// DropAll removes every session. A factory reset calls this: the running
// application is forced through a full reload.
func (m *Manager) DropAll() {
	m.mu.Lock()
	dropped := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, ctrl := range dropped {
		ctrl.Shutdown()
	}
	m.logger.Info("all sessions dropped", zap.Int("count", len(dropped)))
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
