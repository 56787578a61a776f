package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests that did not authenticate. Runs after JWT,
// which fills user_id for valid bearer tokens.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v := c.Locals("user_id"); v == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "No access token")
		} else if uid, ok := v.(string); !ok || strings.TrimSpace(uid) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No access token")
		}
		return c.Next()
	}
}
