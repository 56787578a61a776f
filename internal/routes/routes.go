package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogspace/internal/handlers"
	"blogspace/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Auth     *handlers.AuthHandler
	Blogs    *handlers.BlogHandler
	Comments *handlers.CommentHandler
	Uploads  *handlers.UploadHandler
}

// Register wires every endpoint. Writes behind RequireAuth, reads open.
func Register(app *fiber.App, d Deps) {
	app.Get("/get-upload-url", d.Uploads.UploadURL)

	auth := app.Group("/auth")
	auth.Post("/signup", d.Auth.Signup)
	auth.Post("/signin", d.Auth.Signin)
	auth.Post("/google-auth", d.Auth.GoogleAuth)
	auth.Post("/change-password", middleware.RequireAuth(), d.Auth.ChangePassword)
	auth.Post("/search-users", d.Auth.SearchUsers)
	auth.Post("/get-profile", d.Auth.GetProfile)

	blog := app.Group("/blog")
	blog.Post("/create-blog", middleware.RequireAuth(), d.Blogs.Create)
	blog.Post("/latest-blogs", d.Blogs.Latest)
	blog.Post("/all-latest-blogs-count", d.Blogs.LatestCount)
	blog.Get("/trending-blogs", d.Blogs.Trending)
	blog.Post("/search-blogs", d.Blogs.Search)
	blog.Post("/search-blogs-count", d.Blogs.SearchCount)
	blog.Post("/get-blog", d.Blogs.Get)
	blog.Post("/like-blog", middleware.RequireAuth(), d.Blogs.Like)
	blog.Post("/isliked-by-user", middleware.RequireAuth(), d.Blogs.IsLiked)

	comment := app.Group("/comment")
	comment.Post("/add-comment", middleware.RequireAuth(), d.Comments.Add)
	comment.Post("/get-blog-comments", d.Comments.List)
	comment.Post("/get-replies", d.Comments.Replies)
	comment.Post("/delete-comment", middleware.RequireAuth(), d.Comments.Delete)
}
