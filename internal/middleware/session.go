package middleware

import (
	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the opaque session cookie.
const SessionCookie = "devboard_session"

// SessionProtected authenticates via the session cookie. Validity is
// re-derived from the store on every request; nothing is cached
// process-wide.
func SessionProtected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.ResolveSession(c.Cookies(SessionCookie))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		}

		c.Locals("userID", user.ID)
		return c.Next()
	}
}
