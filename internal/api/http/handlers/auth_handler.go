package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/api/dto"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
)

// AuthHandler exposes onboarding, login and logout.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Onboarding handles POST /auth/onboarding. Valid only while the system is
// uninitialized; it creates the sole super admin and seeds the tenant list.
func (h *AuthHandler) Onboarding(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.OnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	identity, err := h.sessions.CompleteOnboarding(c.Context(), ctrl, req.Name, req.Email, req.Password, c.IP())
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"identity": identity,
			"session":  dto.FromState(ctrl.Snapshot()),
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	identity, err := h.sessions.Login(c.Context(), ctrl, req.Email, req.Password, c.IP())
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"identity": identity,
			"session":  dto.FromState(ctrl.Snapshot()),
		},
	})
}

// Logout handles POST /auth/logout. The confirm flag mirrors the shell's
// sign-out prompt; without it the request is rejected.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctrl, ok := auth.ControllerFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Logout(c.Context(), ctrl, req.Confirm, c.IP()); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.FromState(ctrl.Snapshot())},
	})
}
