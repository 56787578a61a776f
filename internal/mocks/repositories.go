package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/errs"
	"blogspace/internal/models"
	"blogspace/internal/repository"
)

// In-memory repositories mirroring the Mongo implementations closely
// enough for service tests: duplicate-key sentinels, newest-first
// ordering, find-and-update returning the pre-update document.

// ---- users ----

type MockUserRepo struct {
	mu    sync.Mutex
	Users map[bson.ObjectID]*models.User
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[bson.ObjectID]*models.User)}
}

func (m *MockUserRepo) Insert(_ context.Context, u *models.User) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.Users {
		if ex.PersonalInfo.Email == u.PersonalInfo.Email ||
			ex.PersonalInfo.Username == u.PersonalInfo.Username {
			return bson.NilObjectID, errs.ErrDuplicateKey
		}
	}
	id := bson.NewObjectID()
	u.ID = id
	m.Users[id] = u
	return id, nil
}

func (m *MockUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		return u, nil
	}
	return nil, errs.ErrNotFound
}

func (m *MockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.PersonalInfo.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *MockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.PersonalInfo.Username == username {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *MockUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.PersonalInfo.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepo) SearchByUsername(_ context.Context, query string, limit int64) ([]models.AuthorPreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AuthorPreview{}
	for _, u := range m.Users {
		if int64(len(out)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(u.PersonalInfo.Username), strings.ToLower(query)) {
			out = append(out, preview(u))
		}
	}
	return out, nil
}

func (m *MockUserRepo) RecordNewBlog(_ context.Context, userID, blogID bson.ObjectID, postsDelta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return errs.ErrNotFound
	}
	u.AccountInfo.TotalPosts += postsDelta
	u.Blogs = append(u.Blogs, blogID)
	return nil
}

func (m *MockUserRepo) IncTotalReads(_ context.Context, userID bson.ObjectID, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[userID]; ok {
		u.AccountInfo.TotalReads += delta
	}
	return nil
}

func (m *MockUserRepo) UpdatePassword(_ context.Context, userID bson.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[userID]
	if !ok {
		return errs.ErrNotFound
	}
	u.PersonalInfo.Password = hash
	return nil
}

func preview(u *models.User) models.AuthorPreview {
	return models.AuthorPreview{PersonalInfo: models.AuthorPersonalInfo{
		Fullname:   u.PersonalInfo.Fullname,
		Username:   u.PersonalInfo.Username,
		ProfileImg: u.PersonalInfo.ProfileImg,
	}}
}

// ---- blogs ----

type MockBlogRepo struct {
	mu    sync.Mutex
	Blogs map[bson.ObjectID]*models.Blog
	// Users supplies author previews for feed cards; may be nil.
	Users *MockUserRepo
}

var _ repository.BlogRepository = (*MockBlogRepo)(nil)

func NewMockBlogRepo(users *MockUserRepo) *MockBlogRepo {
	return &MockBlogRepo{Blogs: make(map[bson.ObjectID]*models.Blog), Users: users}
}

func (m *MockBlogRepo) Insert(_ context.Context, b *models.Blog) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.Blogs {
		if ex.BlogID == b.BlogID {
			return bson.NilObjectID, errs.ErrDuplicateKey
		}
	}
	id := bson.NewObjectID()
	b.ID = id
	m.Blogs[id] = b
	return id, nil
}

func (m *MockBlogRepo) Update(_ context.Context, slug string, b *models.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.Blogs {
		if ex.BlogID == slug {
			ex.Title = b.Title
			ex.Des = b.Des
			ex.Banner = b.Banner
			ex.Content = b.Content
			ex.Tags = b.Tags
			ex.Draft = b.Draft
			return nil
		}
	}
	return errs.ErrNotFound
}

func (m *MockBlogRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.Blogs[id]; ok {
		return b, nil
	}
	return nil, errs.ErrNotFound
}

func (m *MockBlogRepo) FindBySlugIncReads(_ context.Context, slug string, inc int64) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Blogs {
		if b.BlogID == slug {
			before := *b
			b.Activity.TotalReads += inc
			return &before, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *MockBlogRepo) Latest(_ context.Context, skip, limit int64) ([]models.BlogCard, error) {
	return m.cards(func(b *models.Blog) bool { return !b.Draft }, byPublishedAt, skip, limit), nil
}

func (m *MockBlogRepo) CountPublished(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.Blogs {
		if !b.Draft {
			n++
		}
	}
	return n, nil
}

func (m *MockBlogRepo) Trending(_ context.Context, limit int64) ([]models.BlogCard, error) {
	return m.cards(func(b *models.Blog) bool { return !b.Draft }, byTrendingScore, 0, limit), nil
}

func (m *MockBlogRepo) Search(_ context.Context, f repository.SearchFilter, skip, limit int64) ([]models.BlogCard, error) {
	return m.cards(matchFilter(f), byPublishedAt, skip, limit), nil
}

func (m *MockBlogRepo) CountSearch(_ context.Context, f repository.SearchFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match := matchFilter(f)
	var n int64
	for _, b := range m.Blogs {
		if match(b) {
			n++
		}
	}
	return n, nil
}

func matchFilter(f repository.SearchFilter) func(*models.Blog) bool {
	return func(b *models.Blog) bool {
		if b.Draft {
			return false
		}
		switch {
		case f.Tag != "":
			if f.EliminateBlog != "" && b.BlogID == f.EliminateBlog {
				return false
			}
			for _, t := range b.Tags {
				if t == f.Tag {
					return true
				}
			}
			return false
		case f.Query != "":
			return strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Query))
		default:
			return b.Author == f.Author
		}
	}
}

func byPublishedAt(a, b *models.Blog) bool {
	return a.PublishedAt.After(b.PublishedAt)
}

func byTrendingScore(a, b *models.Blog) bool {
	if a.Activity.TotalReads != b.Activity.TotalReads {
		return a.Activity.TotalReads > b.Activity.TotalReads
	}
	if a.Activity.TotalLikes != b.Activity.TotalLikes {
		return a.Activity.TotalLikes > b.Activity.TotalLikes
	}
	return a.PublishedAt.After(b.PublishedAt)
}

func (m *MockBlogRepo) cards(match func(*models.Blog) bool, less func(a, b *models.Blog) bool, skip, limit int64) []models.BlogCard {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hits []*models.Blog
	for _, b := range m.Blogs {
		if match(b) {
			hits = append(hits, b)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return less(hits[i], hits[j]) })

	out := []models.BlogCard{}
	for i, b := range hits {
		if int64(i) < skip {
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		card := models.BlogCard{
			BlogID:      b.BlogID,
			Title:       b.Title,
			Des:         b.Des,
			Banner:      b.Banner,
			Activity:    b.Activity,
			Tags:        b.Tags,
			PublishedAt: b.PublishedAt,
		}
		if m.Users != nil {
			if u, ok := m.Users.Users[b.Author]; ok {
				card.Author = preview(u)
			}
		}
		out = append(out, card)
	}
	return out
}

func (m *MockBlogRepo) IncLikes(_ context.Context, id bson.ObjectID, delta int64) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Blogs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	b.Activity.TotalLikes += delta
	return b, nil
}

func (m *MockBlogRepo) AttachComment(_ context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Blogs[blogID]
	if !ok {
		return errs.ErrNotFound
	}
	b.Comments = append(b.Comments, commentID)
	b.Activity.TotalComments++
	b.Activity.TotalParentComments += parentDelta
	return nil
}

func (m *MockBlogRepo) DetachComment(_ context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Blogs[blogID]
	if !ok {
		return errs.ErrNotFound
	}
	for i, id := range b.Comments {
		if id == commentID {
			b.Comments = append(b.Comments[:i], b.Comments[i+1:]...)
			break
		}
	}
	b.Activity.TotalComments--
	b.Activity.TotalParentComments += parentDelta
	return nil
}

// ---- comments ----

type MockCommentRepo struct {
	mu       sync.Mutex
	Comments map[bson.ObjectID]*models.Comment
	Users    *MockUserRepo
}

var _ repository.CommentRepository = (*MockCommentRepo)(nil)

func NewMockCommentRepo(users *MockUserRepo) *MockCommentRepo {
	return &MockCommentRepo{Comments: make(map[bson.ObjectID]*models.Comment), Users: users}
}

func (m *MockCommentRepo) Insert(_ context.Context, c *models.Comment) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := bson.NewObjectID()
	c.ID = id
	m.Comments[id] = c
	return id, nil
}

func (m *MockCommentRepo) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Comments[id]; ok {
		return c, nil
	}
	return nil, errs.ErrNotFound
}

func (m *MockCommentRepo) PushChild(_ context.Context, parentID, childID bson.ObjectID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Comments[parentID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	before := *p
	p.Children = append(p.Children, childID)
	return &before, nil
}

func (m *MockCommentRepo) PullChild(_ context.Context, parentID, childID bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Comments[parentID]
	if !ok {
		return nil
	}
	for i, id := range p.Children {
		if id == childID {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockCommentRepo) ListRoots(_ context.Context, blogID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error) {
	return m.list(func(c *models.Comment) bool { return c.BlogID == blogID && !c.IsReply }, skip, limit), nil
}

func (m *MockCommentRepo) ListReplies(_ context.Context, parentID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error) {
	return m.list(func(c *models.Comment) bool { return c.Parent != nil && *c.Parent == parentID }, skip, limit), nil
}

func (m *MockCommentRepo) list(match func(*models.Comment) bool, skip, limit int64) []models.CommentWithAuthor {
	m.mu.Lock()
	defer m.mu.Unlock()

	var hits []*models.Comment
	for _, c := range m.Comments {
		if match(c) {
			hits = append(hits, c)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].CommentedAt.After(hits[j].CommentedAt)
	})

	out := []models.CommentWithAuthor{}
	for i, c := range hits {
		if int64(i) < skip {
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		item := models.CommentWithAuthor{Comment: *c}
		if m.Users != nil {
			if u, ok := m.Users.Users[c.CommentedBy]; ok {
				item.CommentedByUser = preview(u)
			}
		}
		out = append(out, item)
	}
	return out
}

func (m *MockCommentRepo) Delete(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	delete(m.Comments, id)
	return c, nil
}

// ---- notifications ----

type MockNotificationRepo struct {
	mu    sync.Mutex
	Notes []*models.Notification
}

var _ repository.NotificationRepository = (*MockNotificationRepo)(nil)

func NewMockNotificationRepo() *MockNotificationRepo {
	return &MockNotificationRepo{}
}

func (m *MockNotificationRepo) Insert(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.Type == models.NotificationLike {
		for _, ex := range m.Notes {
			if ex.Type == models.NotificationLike && ex.User == n.User && ex.Blog == n.Blog {
				return errs.ErrDuplicateKey
			}
		}
	}
	n.ID = bson.NewObjectID()
	m.Notes = append(m.Notes, n)
	return nil
}

func (m *MockNotificationRepo) DeleteLike(_ context.Context, actor, blogID bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.Notes {
		if n.Type == models.NotificationLike && n.User == actor && n.Blog == blogID {
			m.Notes = append(m.Notes[:i], m.Notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockNotificationRepo) LikeExists(_ context.Context, actor, blogID bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Notes {
		if n.Type == models.NotificationLike && n.User == actor && n.Blog == blogID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockNotificationRepo) DeleteForComment(_ context.Context, commentID bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Notes[:0]
	for _, n := range m.Notes {
		refs := (n.Comment != nil && *n.Comment == commentID) ||
			(n.Reply != nil && *n.Reply == commentID) ||
			(n.RepliedOnComment != nil && *n.RepliedOnComment == commentID)
		if !refs {
			kept = append(kept, n)
		}
	}
	m.Notes = kept
	return nil
}

// ForComment returns notifications still referencing a comment.
func (m *MockNotificationRepo) ForComment(commentID bson.ObjectID) []*models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Notification
	for _, n := range m.Notes {
		if n.Comment != nil && *n.Comment == commentID {
			out = append(out, n)
		}
	}
	return out
}

// ---- transactions ----

// MockTxRunner runs the callback inline; no transactional semantics.
type MockTxRunner struct {
	Calls int
}

var _ repository.TxRunner = (*MockTxRunner)(nil)

func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
