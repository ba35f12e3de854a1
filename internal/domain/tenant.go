package domain

import "time"

// TenantStatus enumerates lifecycle states for tenant churches.
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "Active"
	TenantStatusSuspended TenantStatus = "Suspended"
	TenantStatusTrial     TenantStatus = "Trial"
)

// Tenant is one customer church organization with its own data scope.
type Tenant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	AdminEmail   string       `json:"adminEmail"`
	ContactPhone string       `json:"contactPhone,omitempty"`
	Address      string       `json:"address,omitempty"`
	Status       TenantStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	MemberCount  int          `json:"memberCount"`
	LastActive   string       `json:"lastActive"`
}
