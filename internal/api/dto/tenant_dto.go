package dto

// ProvisionTenantRequest creates a tenant from the provisioning console.
type ProvisionTenantRequest struct {
	Name         string `json:"name"`
	AdminEmail   string `json:"admin_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// UpdateTenantRequest replaces mutable tenant fields.
type UpdateTenantRequest struct {
	Name         string `json:"name"`
	AdminEmail   string `json:"admin_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Status       string `json:"status"`
	MemberCount  *int   `json:"member_count"`
	LastActive   string `json:"last_active"`
}
