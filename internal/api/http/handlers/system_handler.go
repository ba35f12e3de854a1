package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/observability"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
)

// SystemHandler exposes system-level operations.
type SystemHandler struct {
	sessions *service.SessionService
	gateway  *store.Gateway
	metrics  *observability.Metrics
}

// NewSystemHandler constructs handler.
func NewSystemHandler(sessions *service.SessionService, gateway *store.Gateway, metrics *observability.Metrics) *SystemHandler {
	return &SystemHandler{sessions: sessions, gateway: gateway, metrics: metrics}
}

// Config handles GET /system/config.
func (h *SystemHandler) Config(c *fiber.Ctx) error {
	cfg, err := h.gateway.Config(c.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"config": cfg}})
}

// Metrics handles GET /system/metrics.
func (h *SystemHandler) Metrics(c *fiber.Ctx) error {
	requests, errs, transitions := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests":    requests,
		"errors":      errs,
		"transitions": transitions,
	}})
}

// Reset handles POST /system/reset. It wipes every persisted collection and
// invalidates every live session, including the caller's.
func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Reset(c.Context(), ctrl, req.Confirm, c.IP()); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}
