package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
)

// SessionHandler exposes session lifecycle endpoints.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /sessions. It is the unauthenticated entry point:
// the returned token addresses the new session on every later call.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	state, token, exp, err := h.sessions.CreateSession(c.Context())
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.FromState(state),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Current handles GET /sessions/current.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.FromState(ctrl.Snapshot())},
	})
}
