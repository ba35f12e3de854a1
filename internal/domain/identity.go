package domain

import "time"

// Role enumerates access levels for platform identities.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleModerator  Role = "MODERATOR"
	RoleViewer     Role = "VIEWER"
)

// Valid reports whether the role is one of the known access levels.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleViewer:
		return true
	}
	return false
}

// Identity is the domain model for people who sign in to the platform.
// A super admin has no tenant affiliation; everyone else belongs to one.
type Identity struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"passwordHash,omitempty"`
	Role             Role       `json:"role"`
	Avatar           string     `json:"avatar"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	TenantID         *string    `json:"tenantId,omitempty"`
}
