package handlers

import (
	"github.com/gofiber/fiber/v2"

	"blogspace/internal/dto"
	"blogspace/internal/service"
)

type BlogHandler struct {
	Blogs *service.BlogService
}

func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{Blogs: blogs}
}

// POST /blog/create-blog
// @Summary Create or update a blog
// @Tags blog
// @Accept json
// @Produce json
// @Param body body dto.CreateBlogRequest true "blog payload"
// @Success 200 {object} dto.CreateBlogResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blog/create-blog [post]
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	slug, err := h.Blogs.Create(c.Context(), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CreateBlogResponse{ID: slug})
}

// POST /blog/latest-blogs
func (h *BlogHandler) Latest(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	blogs, err := h.Blogs.Latest(c.Context(), req.Page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.BlogListResponse{Blogs: blogs})
}

// POST /blog/all-latest-blogs-count
func (h *BlogHandler) LatestCount(c *fiber.Ctx) error {
	count, err := h.Blogs.CountLatest(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CountResponse{TotalDocs: count})
}

// GET /blog/trending-blogs
func (h *BlogHandler) Trending(c *fiber.Ctx) error {
	blogs, err := h.Blogs.Trending(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.BlogListResponse{Blogs: blogs})
}

// POST /blog/search-blogs
func (h *BlogHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchBlogsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	blogs, err := h.Blogs.Search(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.BlogListResponse{Blogs: blogs})
}

// POST /blog/search-blogs-count
func (h *BlogHandler) SearchCount(c *fiber.Ctx) error {
	var req dto.SearchBlogsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	count, err := h.Blogs.CountSearch(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CountResponse{TotalDocs: count})
}

// POST /blog/get-blog
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	var req dto.GetBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	blog, err := h.Blogs.Get(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.GetBlogResponse{Blog: blog})
}

// POST /blog/like-blog
func (h *BlogHandler) Like(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.LikeBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	liked, err := h.Blogs.Like(c.Context(), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.LikeBlogResponse{LikedByUser: liked})
}

// POST /blog/isliked-by-user
func (h *BlogHandler) IsLiked(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.IsLikedRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.Blogs.IsLiked(c.Context(), uid, req.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.IsLikedResponse{Result: result})
}
