package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dtechsoftwares/ecclesiapro/internal/audit"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
)

// AuditRecorder turns admin-core events into audit trail entries.
type AuditRecorder struct {
	dispatcher events.Dispatcher
	trail      *audit.Trail
	logger     *zap.Logger
}

// NewAuditRecorder creates the recorder.
func NewAuditRecorder(dispatcher events.Dispatcher, trail *audit.Trail, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{dispatcher: dispatcher, trail: trail, logger: logger}
}

// RegisterHandlers subscribes to every auditable event type.
func (r *AuditRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(events.EventLoginSucceeded, r.handleLoginSucceeded)
	r.dispatcher.Subscribe(events.EventLoginFailed, r.handleLoginFailed)
	r.dispatcher.Subscribe(events.EventLoggedOut, r.handleLoggedOut)
	r.dispatcher.Subscribe(events.EventViewNavigated, r.handleViewNavigated)
	r.dispatcher.Subscribe(events.EventTenantAccessed, r.handleTenantAccessed)
	r.dispatcher.Subscribe(events.EventTenantProvisioned, r.handleTenantProvisioned)
	r.dispatcher.Subscribe(events.EventTenantUpdated, r.handleTenantUpdated)
	r.dispatcher.Subscribe(events.EventSystemInitialized, r.handleSystemInitialized)
	r.dispatcher.Subscribe(events.EventSystemReset, r.handleSystemReset)
	r.dispatcher.Subscribe(events.EventAuditExported, r.handleAuditExported)
	r.dispatcher.Subscribe(events.EventInsightGenerated, r.handleInsightGenerated)
}

func (r *AuditRecorder) handleLoginSucceeded(_ context.Context, event events.Event) error {
	r.record(event, "LOGIN", "AUTH", "User signed in", domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleLoginFailed(_ context.Context, event events.Event) error {
	details := "Failed login attempt"
	if p, ok := event.Payload.(events.LoginPayload); ok {
		details = fmt.Sprintf("Failed login attempt for %s", p.Email)
	}
	r.record(event, "LOGIN_FAILED", "AUTH", details, domain.SeverityWarning)
	return nil
}

func (r *AuditRecorder) handleLoggedOut(_ context.Context, event events.Event) error {
	r.record(event, "LOGOUT", "AUTH", "User signed out", domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleViewNavigated(_ context.Context, event events.Event) error {
	details := "Accessed view"
	if p, ok := event.Payload.(events.NavigationPayload); ok {
		details = fmt.Sprintf("Accessed %s view", p.View.Label())
	}
	r.record(event, "NAVIGATE", "UI", details, domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleTenantAccessed(_ context.Context, event events.Event) error {
	details := "Super Admin accessed tenant"
	if p, ok := event.Payload.(events.TenantPayload); ok {
		details = fmt.Sprintf("Super Admin accessed %s", p.TenantName)
	}
	r.record(event, "ACCESS_TENANT", "SYSTEM", details, domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleTenantProvisioned(_ context.Context, event events.Event) error {
	details := "Tenant provisioned"
	if p, ok := event.Payload.(events.TenantPayload); ok {
		details = fmt.Sprintf("Provisioned tenant %s", p.TenantName)
	}
	r.record(event, "PROVISION_TENANT", "SYSTEM", details, domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleTenantUpdated(_ context.Context, event events.Event) error {
	details := "Tenant updated"
	if p, ok := event.Payload.(events.TenantPayload); ok {
		details = fmt.Sprintf("Updated tenant %s", p.TenantName)
	}
	r.record(event, "UPDATE_TENANT", "SYSTEM", details, domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleSystemInitialized(_ context.Context, event events.Event) error {
	r.record(event, "SYSTEM_INIT", "SYSTEM", payloadDetail(event, "System initialized successfully"), domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleSystemReset(_ context.Context, event events.Event) error {
	r.record(event, "FACTORY_RESET", "SYSTEM", payloadDetail(event, "Factory reset"), domain.SeverityCritical)
	return nil
}

func (r *AuditRecorder) handleAuditExported(_ context.Context, event events.Event) error {
	details := "Audit log exported"
	if p, ok := event.Payload.(events.ExportPayload); ok {
		details = fmt.Sprintf("Audit log exported (%d entries)", p.EntryCount)
	}
	r.record(event, "DATA_EXPORT", "SYSTEM", details, domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) handleInsightGenerated(_ context.Context, event events.Event) error {
	r.record(event, "AI_DRAFT", "COMMUNICATIONS", payloadDetail(event, "AI draft generated"), domain.SeverityInfo)
	return nil
}

func (r *AuditRecorder) record(event events.Event, action, module, details string, severity domain.AuditSeverity) {
	entry := r.trail.Record(event.Actor.Identity, action, module, details, event.Actor.IPAddress, severity)
	r.logger.Debug("audit",
		zap.String("action", entry.Action),
		zap.String("module", entry.Module),
		zap.String("details", entry.Details),
		zap.String("severity", string(entry.Severity)))
}

func payloadDetail(event events.Event, fallback string) string {
	if p, ok := event.Payload.(events.SystemPayload); ok && p.Detail != "" {
		return p.Detail
	}
	return fallback
}
