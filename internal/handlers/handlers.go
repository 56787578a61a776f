package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/dto"
	"blogspace/internal/errs"
)

// userIDFrom reads the authenticated user set by the JWT middleware.
func userIDFrom(c *fiber.Ctx) (bson.ObjectID, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok {
			if oid, err := bson.ObjectIDFromHex(s); err == nil {
				return oid, true
			}
		}
	}
	return bson.NilObjectID, false
}

// fail renders any error as the uniform {"error": ...} body.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(errs.StatusOf(err)).JSON(dto.ErrorResponse{Error: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
}
