package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/service"
	"github.com/dtechsoftwares/ecclesiapro/internal/session"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
	apperrors "github.com/dtechsoftwares/ecclesiapro/pkg/util"
)

// mapServiceError translates service and session errors into HTTP responses.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid credentials")
	case errors.Is(err, service.ErrAlreadyInitialized):
		return apperrors.NewConflict("system already initialized", nil)
	case errors.Is(err, session.ErrConfirmationRequired):
		return apperrors.NewConfirmationRequired("confirmation required")
	case errors.Is(err, session.ErrTransitionInFlight):
		return apperrors.NewConflict("a transition is already in flight", nil)
	case errors.Is(err, session.ErrSuperAdminOnly):
		return apperrors.NewForbidden("super admin only")
	case errors.Is(err, session.ErrNotAuthenticated):
		return apperrors.NewUnauthorized("sign in required")
	case errors.Is(err, session.ErrInvalidView):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrTenantNotFound):
		return apperrors.NewNotFound("tenant", nil)
	case errors.Is(err, service.ErrTenantNameRequired):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return apperrors.MapError(err)
	}
}
