package dto

import (
	"time"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/session"
)

// SessionState is the wire shape of a session snapshot.
type SessionState struct {
	SessionID    string           `json:"session_id"`
	Phase        string           `json:"phase"`
	Initialized  bool             `json:"initialized"`
	Identity     *domain.Identity `json:"identity,omitempty"`
	ActiveView   domain.View      `json:"active_view"`
	ActiveTenant *domain.Tenant   `json:"active_tenant,omitempty"`
	Navigating   bool             `json:"navigating"`
	Render       string           `json:"render"`
}

// FromState converts a controller snapshot into its wire shape.
func FromState(state session.State) SessionState {
	return SessionState{
		SessionID:    state.SessionID,
		Phase:        string(state.Phase),
		Initialized:  state.Initialized,
		Identity:     state.Identity,
		ActiveView:   state.ActiveView,
		ActiveTenant: state.ActiveTenant,
		Navigating:   state.Navigating,
		Render:       string(state.Render),
	}
}

// AuthResponse is the standard token envelope for session creation.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
