package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dtechsoftwares/ecclesiapro/internal/session"
	apperrors "github.com/dtechsoftwares/ecclesiapro/pkg/util"
)

const controllerKey = "session_controller"

// SessionMiddleware validates bearer tokens and loads the session
// controller they address.
type SessionMiddleware struct {
	tokens   *TokenManager
	sessions *session.Manager
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, sessions: sessions}
}

// Handle enforces a valid session token for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	ctrl, ok := m.sessions.Get(claims.SessionID)
	if !ok {
		// Sessions are dropped on factory reset; the client must start over.
		return apperrors.NewUnauthorized("session not found")
	}

	c.Locals(controllerKey, ctrl)
	return c.Next()
}

// ControllerFromContext retrieves the session controller for the request.
func ControllerFromContext(c *fiber.Ctx) (*session.Controller, bool) {
	val := c.Locals(controllerKey)
	if val == nil {
		return nil, false
	}
	ctrl, ok := val.(*session.Controller)
	return ctrl, ok
}
