package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogspace/internal/dto"
	"blogspace/internal/service"
)

type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

// POST /comment/add-comment
// @Summary Comment on a blog, or reply to a comment
// @Tags comment
// @Accept json
// @Produce json
// @Param body body dto.AddCommentRequest true "comment payload"
// @Success 200 {object} dto.AddCommentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /comment/add-comment [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.Comments.Add(c.Context(), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// POST /comment/get-blog-comments
func (h *CommentHandler) List(c *fiber.Ctx) error {
	var req dto.GetCommentsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	comments, err := h.Comments.Roots(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

// POST /comment/get-replies
func (h *CommentHandler) Replies(c *fiber.Ctx) error {
	var req dto.GetRepliesRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	replies, err := h.Comments.Replies(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.RepliesResponse{Replies: replies})
}

// POST /comment/delete-comment
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.DeleteCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.Comments.Delete(c.Context(), uid, req.ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.DeleteCommentResponse{Status: "Comment deleted"})
}
