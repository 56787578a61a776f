package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT validates a bearer token and stashes the caller's id in
// c.Locals("user_id"). Requests without an Authorization header pass
// through anonymous; the guarded routes reject them via RequireAuth.
func JWT(secret []byte) fiber.Handler {
	type sessionClaims struct {
		ID string `json:"id,omitempty"`
		jwt.RegisteredClaims
	}

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims sessionClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return secret, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token is invalid")
		}

		uid := claims.ID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token is invalid")
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}
