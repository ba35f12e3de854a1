package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
)

// InsightsHandler exposes AI drafting endpoints. Failures never error the
// request; they return fixed fallback text.
type InsightsHandler struct {
	insights *service.InsightService
}

// NewInsightsHandler constructs handler.
func NewInsightsHandler(insights *service.InsightService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Generate handles POST /insights/generate.
func (h *InsightsHandler) Generate(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Prompt == "" {
		return fiber.NewError(http.StatusBadRequest, "prompt required")
	}

	text := h.insights.GenerateInsight(c.Context(), ctrl.Snapshot().Identity, req.Prompt, req.Context, c.IP())
	return c.JSON(fiber.Map{"data": fiber.Map{"text": text}})
}

// Draft handles POST /messages/draft.
func (h *InsightsHandler) Draft(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.DraftMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Topic == "" || req.Audience == "" {
		return fiber.NewError(http.StatusBadRequest, "topic and audience required")
	}

	text := h.insights.DraftMessage(c.Context(), ctrl.Snapshot().Identity, req.Topic, req.Audience, c.IP())
	return c.JSON(fiber.Map{"data": fiber.Map{"text": text}})
}
