package dto

import (
	"blogspace/internal/models"
)

type CreateBlogRequest struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Des     string         `json:"des"`
	Banner  string         `json:"banner"`
	Tags    []string       `json:"tags"`
	Content models.Content `json:"content"`
	Draft   bool           `json:"draft"`
}

type CreateBlogResponse struct {
	ID string `json:"id"`
}

type PageRequest struct {
	Page int64 `json:"page"`
}

type SearchBlogsRequest struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int64  `json:"page"`
	Limit         int64  `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

type BlogListResponse struct {
	Blogs []models.BlogCard `json:"blogs"`
}

type CountResponse struct {
	TotalDocs int64 `json:"totalDocs"`
}

type GetBlogRequest struct {
	BlogID string `json:"blog_id"`
	Draft  bool   `json:"draft"`
	Mode   string `json:"mode"`
}

// BlogDetail is a blog with the author preview in place of the author id;
// the outer field shadows the embedded id on marshal.
type BlogDetail struct {
	models.Blog
	Author models.AuthorPreview `json:"author"`
}

type GetBlogResponse struct {
	Blog BlogDetail `json:"blog"`
}

type LikeBlogRequest struct {
	ID            string `json:"_id"`
	IsLikedByUser bool   `json:"islikedByUser"`
}

type LikeBlogResponse struct {
	LikedByUser bool `json:"liked_by_user"`
}

type IsLikedRequest struct {
	ID string `json:"_id"`
}

type IsLikedResponse struct {
	Result bool `json:"result"`
}
