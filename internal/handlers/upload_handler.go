package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogspace/internal/dto"
	"blogspace/internal/service"
)

type UploadHandler struct {
	Uploads *service.UploadService
}

func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{Uploads: uploads}
}

// GET /get-upload-url
func (h *UploadHandler) UploadURL(c *fiber.Ctx) error {
	url, err := h.Uploads.UploadURL(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.UploadURLResponse{UploadURL: url})
}
