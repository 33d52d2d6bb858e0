package auth

import (
	"errors"

	mw "dropsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
)

// RequireActiveUser rejects requests whose token no longer maps to an
// active user. It runs after the bearer-token middleware, so a deleted
// or disabled user is locked out even while their token is still valid.
func RequireActiveUser(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := service.User(c.Context(), mw.UserID(c)); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "User lookup failed"})
		}
		return c.Next()
	}
}
