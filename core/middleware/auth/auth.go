package auth

import (
	"errors"
	"strings"

	"dropsync/core/security"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserID is the fiber locals key holding the authenticated user's ID.
const LocalsUserID = "user_id"

// Config holds the dependencies for the auth middleware.
type Config struct {
	// Tokens validates incoming bearer tokens.
	Tokens *security.TokenManager
}

// New returns a middleware that requires a valid bearer token and stores
// the authenticated user's ID in the request locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		claims, err := cfg.Tokens.Validate(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, security.ErrExpiredToken) {
				msg = "Token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": msg,
			})
		}

		c.Locals(LocalsUserID, claims.UserID)
		return c.Next()
	}
}

// UserID extracts the authenticated user's ID from the request locals.
// It returns 0 when the request did not pass through the middleware.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalsUserID).(uint); ok {
		return id
	}
	return 0
}
