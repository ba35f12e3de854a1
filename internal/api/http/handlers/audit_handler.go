package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dtechsoftwares/ecclesiapro/internal/audit"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
)

// AuditHandler exposes the read-only audit trail to the settings screen.
type AuditHandler struct {
	trail      *audit.Trail
	dispatcher events.Dispatcher
}

// NewAuditHandler constructs handler.
func NewAuditHandler(trail *audit.Trail, dispatcher events.Dispatcher) *AuditHandler {
	return &AuditHandler{trail: trail, dispatcher: dispatcher}
}

// List handles GET /audit, newest entries first.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"entries": h.trail.Entries()}})
}

// Export handles GET /audit/export. The export itself is audited.
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	entries := h.trail.Entries()
	_ = h.dispatcher.Publish(c.Context(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAuditExported,
		Actor:     events.Actor{Identity: ctrl.Snapshot().Identity, IPAddress: c.IP()},
		Timestamp: time.Now().UTC(),
		Payload:   events.ExportPayload{EntryCount: len(entries)},
	})

	c.Set("Content-Disposition", `attachment; filename="audit-log.json"`)
	return c.JSON(entries)
}

// Clear handles DELETE /audit.
func (h *AuditHandler) Clear(c *fiber.Ctx) error {
	h.trail.Clear()
	return c.JSON(fiber.Map{"data": fiber.Map{"cleared": true}})
}
