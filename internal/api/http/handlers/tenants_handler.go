package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// TenantsHandler exposes the super-admin provisioning console.
type TenantsHandler struct {
	tenants  *service.TenantService
	sessions *service.SessionService
	gateway  *store.Gateway
}

// NewTenantsHandler constructs handler.
func NewTenantsHandler(tenants *service.TenantService, sessions *service.SessionService, gateway *store.Gateway) *TenantsHandler {
	return &TenantsHandler{tenants: tenants, sessions: sessions, gateway: gateway}
}

// List handles GET /tenants.
func (h *TenantsHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenants.List(c.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tenants": tenants}})
}

// Provision handles POST /tenants.
func (h *TenantsHandler) Provision(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ProvisionTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	tenant, err := h.tenants.Provision(c.Context(), ctrl.Snapshot().Identity,
		req.Name, req.AdminEmail, req.ContactPhone, req.Address, c.IP())
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tenant": tenant}})
}

// Update handles PUT /tenants/:id.
func (h *TenantsHandler) Update(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	id := c.Params("id")
	existing, err := h.gateway.GetTenant(c.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	if existing == nil {
		return mapServiceError(store.ErrTenantNotFound)
	}

	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	tenant := *existing
	if req.Name != "" {
		tenant.Name = req.Name
		tenant.Slug = service.Slugify(req.Name)
	}
	if req.AdminEmail != "" {
		tenant.AdminEmail = req.AdminEmail
	}
	if req.ContactPhone != "" {
		tenant.ContactPhone = req.ContactPhone
	}
	if req.Address != "" {
		tenant.Address = req.Address
	}
	if req.Status != "" {
		status := domain.TenantStatus(req.Status)
		switch status {
		case domain.TenantStatusActive, domain.TenantStatusSuspended, domain.TenantStatusTrial:
			tenant.Status = status
		default:
			return fiber.NewError(http.StatusBadRequest, "invalid tenant status")
		}
	}
	if req.MemberCount != nil {
		tenant.MemberCount = *req.MemberCount
	}
	if req.LastActive != "" {
		tenant.LastActive = req.LastActive
	}

	updated, err := h.tenants.Update(c.Context(), ctrl.Snapshot().Identity, tenant, c.IP())
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"tenant": updated}})
}

// Select handles POST /tenants/:id/select, entering impersonation mode.
func (h *TenantsHandler) Select(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	tenant, err := h.sessions.SelectTenant(c.Context(), ctrl, c.Params("id"), c.IP())
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"tenant":  tenant,
			"session": dto.FromState(ctrl.Snapshot()),
		},
	})
}
