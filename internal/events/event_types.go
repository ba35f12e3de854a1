package events

import (
	"time"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventLoggedOut         EventType = "logged_out"
	EventViewNavigated     EventType = "view_navigated"
	EventTenantAccessed    EventType = "tenant_accessed"
	EventTenantProvisioned EventType = "tenant_provisioned"
	EventTenantUpdated     EventType = "tenant_updated"
	EventSystemInitialized EventType = "system_initialized"
	EventSystemReset       EventType = "system_reset"
	EventAuditExported     EventType = "audit_exported"
	EventInsightGenerated  EventType = "insight_generated"
)

// Actor identifies who triggered an event. A nil identity means the system
// itself acted.
type Actor struct {
	Identity  *domain.Identity `json:"identity,omitempty"`
	IPAddress string           `json:"ip_address"`
}

// Event represents an admin-core event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginPayload accompanies login success and failure events.
type LoginPayload struct {
	Email string `json:"email"`
}

// NavigationPayload names the view a session moved to.
type NavigationPayload struct {
	View domain.View `json:"view"`
}

// TenantPayload names the tenant an event concerns.
type TenantPayload struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
}

// SystemPayload accompanies init and reset events.
type SystemPayload struct {
	Detail string `json:"detail"`
}

// ExportPayload accompanies audit export events.
type ExportPayload struct {
	EntryCount int `json:"entry_count"`
}
