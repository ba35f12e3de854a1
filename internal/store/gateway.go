package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

// Storage keys. Values are JSON text blobs.
const (
	keyConfig  = "ecclesia:config"
	keyUsers   = "ecclesia:users"
	keyTenants = "ecclesia:tenants"
)

// systemVersion is stamped into the configuration record at init time.
const systemVersion = "2.5.0"

// ErrInvalidCredentials is returned by VerifyLogin for an unknown email or
// a password that does not match the stored hash.
var ErrInvalidCredentials = errors.New("store: invalid credentials")

// ErrTenantNotFound is returned when an operation names an unknown tenant id.
var ErrTenantNotFound = errors.New("store: tenant not found")

// seedTenants is the fixed tenant list written when the system is first
// initialized.
func seedTenants(now time.Time) []domain.Tenant {
	return []domain.Tenant{
		{
			ID:          "t1",
			Name:        "Grace Community Church",
			Slug:        "grace-community",
			AdminEmail:  "pastor@grace.com",
			Status:      domain.TenantStatusActive,
			CreatedAt:   now,
			MemberCount: 1248,
			LastActive:  "Just now",
		},
		{
			ID:          "t2",
			Name:        "River Valley Chapel",
			Slug:        "river-valley",
			AdminEmail:  "admin@rivervalley.com",
			Status:      domain.TenantStatusActive,
			CreatedAt:   now.AddDate(0, 0, -30),
			MemberCount: 450,
			LastActive:  "2 days ago",
		},
	}
}

// Gateway is the sole read/write boundary to durable state. It owns the
// configuration singleton, the identity set, and the tenant set, serialized
// as JSON blobs in the underlying KV. Missing keys read as empty
// collections, never as errors.
type Gateway struct {
	kv KV
}

// NewGateway wraps a KV backend.
func NewGateway(kv KV) *Gateway {
	return &Gateway{kv: kv}
}

// IsInitialized reports whether a configuration record exists. Any read
// failure is treated as "not initialized".
func (g *Gateway) IsInitialized(ctx context.Context) bool {
	raw, err := g.kv.Get(ctx, keyConfig)
	if err != nil {
		return false
	}
	var cfg domain.SystemConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return false
	}
	return cfg.IsInitialized
}

// Config returns the configuration singleton, or nil when uninitialized.
func (g *Gateway) Config(ctx context.Context) (*domain.SystemConfig, error) {
	raw, err := g.kv.Get(ctx, keyConfig)
	if errors.Is(err, ErrKeyMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg domain.SystemConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitSystem writes the configuration singleton, the identity set containing
// only the given super admin, and the fixed tenant seed. Calling it again
// overwrites prior state wholesale; there is no merge.
func (g *Gateway) InitSystem(ctx context.Context, superAdmin domain.Identity) error {
	now := time.Now().UTC()
	cfg := domain.SystemConfig{
		IsInitialized: true,
		SuperAdminID:  superAdmin.ID,
		Version:       systemVersion,
		LastBackup:    &now,
	}

	if err := g.writeJSON(ctx, keyConfig, cfg); err != nil {
		return fmt.Errorf("init config: %w", err)
	}
	if err := g.writeJSON(ctx, keyUsers, []domain.Identity{superAdmin}); err != nil {
		return fmt.Errorf("init users: %w", err)
	}
	if err := g.writeJSON(ctx, keyTenants, seedTenants(now)); err != nil {
		return fmt.Errorf("init tenants: %w", err)
	}
	return nil
}

// GetUsers returns all identities. A missing key reads as an empty list.
func (g *Gateway) GetUsers(ctx context.Context) ([]domain.Identity, error) {
	var users []domain.Identity
	if err := g.readJSON(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUser upserts an identity, matching existing records by email.
// Email comparison is case-insensitive so that login lookup and upsert
// agree on which record an address refers to.
func (g *Gateway) SaveUser(ctx context.Context, identity domain.Identity) error {
	users, err := g.GetUsers(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if strings.EqualFold(users[i].Email, identity.Email) {
			users[i] = identity
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, identity)
	}
	return g.writeJSON(ctx, keyUsers, users)
}

// VerifyLogin looks up an identity by case-insensitive email and checks the
// password against its stored bcrypt hash. Identities without a stored hash
// cannot log in.
func (g *Gateway) VerifyLogin(ctx context.Context, email, password string) (*domain.Identity, error) {
	users, err := g.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if !strings.EqualFold(users[i].Email, email) {
			continue
		}
		if users[i].PasswordHash == "" {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		found := users[i]
		return &found, nil
	}
	return nil, ErrInvalidCredentials
}

// GetTenants returns all tenants. A missing key reads as an empty list.
func (g *Gateway) GetTenants(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	if err := g.readJSON(ctx, keyTenants, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetTenant returns the tenant with the given id, or nil when absent.
func (g *Gateway) GetTenant(ctx context.Context, id string) (*domain.Tenant, error) {
	tenants, err := g.GetTenants(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tenants {
		if tenants[i].ID == id {
			found := tenants[i]
			return &found, nil
		}
	}
	return nil, nil
}

// AddTenant appends a tenant to the set.
func (g *Gateway) AddTenant(ctx context.Context, tenant domain.Tenant) error {
	tenants, err := g.GetTenants(ctx)
	if err != nil {
		return err
	}
	tenants = append(tenants, tenant)
	return g.writeJSON(ctx, keyTenants, tenants)
}

// UpdateTenant replaces the tenant with a matching id. Unknown ids are a
// silent no-op, mirroring the list-replace contract.
func (g *Gateway) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	tenants, err := g.GetTenants(ctx)
	if err != nil {
		return err
	}
	for i := range tenants {
		if tenants[i].ID == tenant.ID {
			tenants[i] = tenant
			return g.writeJSON(ctx, keyTenants, tenants)
		}
	}
	return nil
}

// ResetSystem deletes all three persisted collections in a single call,
// so consumers observe the wipe as atomic.
func (g *Gateway) ResetSystem(ctx context.Context) error {
	return g.kv.Delete(ctx, keyConfig, keyUsers, keyTenants)
}

func (g *Gateway) readJSON(ctx context.Context, key string, out any) error {
	raw, err := g.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyMissing) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (g *Gateway) writeJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return g.kv.Set(ctx, key, raw)
}
