package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogspace/internal/dto"
	"blogspace/internal/service"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// POST /auth/signup
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "signup payload"
// @Success 200 {object} dto.AuthResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.Auth.Signup(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// POST /auth/signin
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.Auth.Signin(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// POST /auth/google-auth
func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	var req dto.GoogleAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.Auth.GoogleAuth(c.Context(), req.AccessToken)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.Auth.ChangePassword(c.Context(), uid, req); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "password changed"})
}

// POST /auth/search-users
func (h *AuthHandler) SearchUsers(c *fiber.Ctx) error {
	var req dto.SearchUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	users, err := h.Auth.SearchUsers(c.Context(), req.Query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// POST /auth/get-profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	var req dto.GetProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.Auth.GetProfile(c.Context(), req.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}
