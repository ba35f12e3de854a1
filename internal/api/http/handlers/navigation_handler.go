package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
)

// NavigationHandler moves the application shell between views.
type NavigationHandler struct {
	sessions *service.SessionService
}

// NewNavigationHandler constructs handler.
func NewNavigationHandler(sessions *service.SessionService) *NavigationHandler {
	return &NavigationHandler{sessions: sessions}
}

// Navigate handles POST /navigation.
func (h *NavigationHandler) Navigate(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	view, err := domain.ParseView(req.View)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.Navigate(c.Context(), ctrl, view, c.IP()); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.FromState(ctrl.Snapshot())},
	})
}

// Return handles POST /navigation/return, leaving tenant impersonation.
func (h *NavigationHandler) Return(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.sessions.ReturnToSuperAdmin(c.Context(), ctrl); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.FromState(ctrl.Snapshot())},
	})
}
