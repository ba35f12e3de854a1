package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// ErrTenantNameRequired rejects provisioning without a display name.
var ErrTenantNameRequired = errors.New("tenant name required")

// TenantService backs the super-admin provisioning console.
type TenantService struct {
	gateway    *store.Gateway
	dispatcher events.Dispatcher
}

// NewTenantService builds the service.
func NewTenantService(gateway *store.Gateway, dispatcher events.Dispatcher) *TenantService {
	return &TenantService{gateway: gateway, dispatcher: dispatcher}
}

// List returns every tenant, seeded or provisioned.
func (s *TenantService) List(ctx context.Context) ([]domain.Tenant, error) {
	return s.gateway.GetTenants(ctx)
}

// Provision creates a tenant on a trial, deriving its slug from the name.
func (s *TenantService) Provision(ctx context.Context, actor *domain.Identity, name, adminEmail, phone, address, ip string) (*domain.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTenantNameRequired
	}

	tenant := domain.Tenant{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         Slugify(name),
		AdminEmail:   adminEmail,
		ContactPhone: phone,
		Address:      address,
		Status:       domain.TenantStatusTrial,
		CreatedAt:    time.Now().UTC(),
		MemberCount:  0,
		LastActive:   "Just now",
	}

	if err := s.gateway.AddTenant(ctx, tenant); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTenantProvisioned, actor, ip, events.TenantPayload{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
	})
	return &tenant, nil
}

// Update replaces a tenant record, typically for status changes such as
// suspension or trial conversion.
func (s *TenantService) Update(ctx context.Context, actor *domain.Identity, tenant domain.Tenant, ip string) (*domain.Tenant, error) {
	existing, err := s.gateway.GetTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, store.ErrTenantNotFound
	}

	if err := s.gateway.UpdateTenant(ctx, tenant); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTenantUpdated, actor, ip, events.TenantPayload{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
	})
	return &tenant, nil
}

// Slugify lowercases the name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *TenantService) publish(ctx context.Context, eventType events.EventType, actor *domain.Identity, ip string, payload interface{}) {
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
