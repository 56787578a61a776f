package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/dto"
	"blogspace/internal/errs"
	"blogspace/internal/models"
	"blogspace/internal/repository"
)

const (
	// FeedPageSize applies to the latest feed and the trending cap.
	FeedPageSize = 5
	// SearchPageSize is the default when the caller sends no limit.
	SearchPageSize = 2
)

var slugStrip = regexp.MustCompile(`[^a-zA-Z0-9]`)

type BlogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
	notes repository.NotificationRepository
}

func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository, notes repository.NotificationRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users, notes: notes}
}

// Create validates and stores a blog. An incoming id means the author is
// editing an existing blog, which only rewrites its fields; a fresh blog
// also bumps the author's post counter (drafts count zero) and slug-s the
// title with a nanoid tail.
func (s *BlogService) Create(ctx context.Context, authorID bson.ObjectID, req dto.CreateBlogRequest) (string, error) {
	if req.Title == "" {
		return "", errs.Validation("You must provide the title")
	}
	if !req.Draft {
		if req.Des == "" || len(req.Des) > 200 {
			return "", errs.Validation("You must provide blog description under 200 characters")
		}
		if req.Banner == "" {
			return "", errs.Validation("You must provide blog banner to publish the blog")
		}
		if len(req.Content.Blocks) == 0 {
			return "", errs.Validation("You must provide the blog content to publish the blog")
		}
		if len(req.Tags) == 0 || len(req.Tags) > 10 {
			return "", errs.Validation("Provide tags inorder to publish the blog, Maximum 10")
		}
	}

	tags := make([]string, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = strings.ToLower(t)
	}

	blog := &models.Blog{
		Title:   req.Title,
		Des:     req.Des,
		Banner:  req.Banner,
		Content: req.Content,
		Tags:    tags,
		Draft:   req.Draft,
	}

	if req.ID != "" {
		if err := s.blogs.Update(ctx, req.ID, blog); err != nil {
			return "", err
		}
		return req.ID, nil
	}

	slug, err := makeSlug(req.Title)
	if err != nil {
		return "", err
	}
	blog.BlogID = slug
	blog.Author = authorID
	blog.Comments = []bson.ObjectID{}
	blog.PublishedAt = time.Now().UTC()

	id, err := s.blogs.Insert(ctx, blog)
	if err != nil {
		return "", err
	}

	postsDelta := int64(1)
	if req.Draft {
		postsDelta = 0
	}
	if err := s.users.RecordNewBlog(ctx, authorID, id, postsDelta); err != nil {
		return "", errors.New("Failed to update total posts number")
	}
	return slug, nil
}

func makeSlug(title string) (string, error) {
	base := strings.Join(strings.Fields(slugStrip.ReplaceAllString(title, " ")), "-")
	tail, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return base + tail, nil
}

func (s *BlogService) Latest(ctx context.Context, page int64) ([]models.BlogCard, error) {
	if page < 1 {
		page = 1
	}
	return s.blogs.Latest(ctx, (page-1)*FeedPageSize, FeedPageSize)
}

func (s *BlogService) CountLatest(ctx context.Context) (int64, error) {
	return s.blogs.CountPublished(ctx)
}

func (s *BlogService) Trending(ctx context.Context) ([]models.BlogCard, error) {
	return s.blogs.Trending(ctx, FeedPageSize)
}

func (s *BlogService) Search(ctx context.Context, req dto.SearchBlogsRequest) ([]models.BlogCard, error) {
	f, err := searchFilter(req)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = SearchPageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	return s.blogs.Search(ctx, f, (page-1)*limit, limit)
}

func (s *BlogService) CountSearch(ctx context.Context, req dto.SearchBlogsRequest) (int64, error) {
	f, err := searchFilter(req)
	if err != nil {
		return 0, err
	}
	return s.blogs.CountSearch(ctx, f)
}

func searchFilter(req dto.SearchBlogsRequest) (repository.SearchFilter, error) {
	f := repository.SearchFilter{
		Tag:           req.Tag,
		Query:         req.Query,
		EliminateBlog: req.EliminateBlog,
	}
	if req.Tag == "" && req.Query == "" {
		author, err := bson.ObjectIDFromHex(req.Author)
		if err != nil {
			return f, errs.Validation("invalid author id")
		}
		f.Author = author
	}
	return f, nil
}

// Get fetches one blog by slug, counting the read against both the blog and
// its author unless the caller is editing. Drafts are only served when the
// caller explicitly asks for a draft.
func (s *BlogService) Get(ctx context.Context, req dto.GetBlogRequest) (dto.BlogDetail, error) {
	inc := int64(1)
	if req.Mode == "edit" {
		inc = 0
	}

	blog, err := s.blogs.FindBySlugIncReads(ctx, req.BlogID, inc)
	if err != nil {
		return dto.BlogDetail{}, err
	}
	if err := s.users.IncTotalReads(ctx, blog.Author, inc); err != nil {
		return dto.BlogDetail{}, err
	}
	if blog.Draft && !req.Draft {
		return dto.BlogDetail{}, errors.New("You can not access draft blogs")
	}

	author, err := s.users.FindByID(ctx, blog.Author)
	if err != nil {
		return dto.BlogDetail{}, err
	}
	return dto.BlogDetail{
		Blog: *blog,
		Author: models.AuthorPreview{PersonalInfo: models.AuthorPersonalInfo{
			Fullname:   author.PersonalInfo.Fullname,
			Username:   author.PersonalInfo.Username,
			ProfileImg: author.PersonalInfo.ProfileImg,
		}},
	}, nil
}

// Like toggles the caller's like on a blog. Liking raises the counter and
// leaves a notification for the blog's author; unliking lowers it and takes
// the notification back. The partial unique index absorbs double-likes.
func (s *BlogService) Like(ctx context.Context, userID bson.ObjectID, req dto.LikeBlogRequest) (bool, error) {
	blogID, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return false, errs.Validation("invalid blog id")
	}

	delta := int64(1)
	if req.IsLikedByUser {
		delta = -1
	}
	blog, err := s.blogs.IncLikes(ctx, blogID, delta)
	if err != nil {
		return false, err
	}

	if !req.IsLikedByUser {
		n := &models.Notification{
			Type:            models.NotificationLike,
			Blog:            blogID,
			NotificationFor: blog.Author,
			User:            userID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.notes.Insert(ctx, n); err != nil && !errors.Is(err, errs.ErrDuplicateKey) {
			return false, err
		}
		return true, nil
	}

	if err := s.notes.DeleteLike(ctx, userID, blogID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *BlogService) IsLiked(ctx context.Context, userID bson.ObjectID, blogIDHex string) (bool, error) {
	blogID, err := bson.ObjectIDFromHex(blogIDHex)
	if err != nil {
		return false, errs.Validation("invalid blog id")
	}
	return s.notes.LikeExists(ctx, userID, blogID)
}
