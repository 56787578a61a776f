package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/dto"
	"blogspace/internal/mocks"
	"blogspace/internal/models"
	"blogspace/internal/service"
)

type blogFixture struct {
	users *mocks.MockUserRepo
	blogs *mocks.MockBlogRepo
	notes *mocks.MockNotificationRepo
	svc   *service.BlogService
}

func newBlogFixture() *blogFixture {
	users := mocks.NewMockUserRepo()
	blogs := mocks.NewMockBlogRepo(users)
	notes := mocks.NewMockNotificationRepo()
	return &blogFixture{
		users: users,
		blogs: blogs,
		notes: notes,
		svc:   service.NewBlogService(blogs, users, notes),
	}
}

func (f *blogFixture) addUser(t *testing.T, username string) bson.ObjectID {
	t.Helper()
	id, err := f.users.Insert(context.Background(), &models.User{
		PersonalInfo: models.PersonalInfo{
			Fullname: username + " Example",
			Email:    username + "@example.com",
			Username: username,
		},
	})
	require.NoError(t, err)
	return id
}

func publishReq(title string) dto.CreateBlogRequest {
	return dto.CreateBlogRequest{
		Title:   title,
		Des:     "a description",
		Banner:  "https://example.com/banner.jpeg",
		Tags:    []string{"Go", "Testing"},
		Content: models.Content{Blocks: []bson.M{{"type": "paragraph"}}},
	}
}

func TestCreateBlogValidation(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	cases := []struct {
		name string
		mut  func(*dto.CreateBlogRequest)
		msg  string
	}{
		{"no title", func(r *dto.CreateBlogRequest) { r.Title = "" }, "You must provide the title"},
		{"no description", func(r *dto.CreateBlogRequest) { r.Des = "" }, "You must provide blog description under 200 characters"},
		{"long description", func(r *dto.CreateBlogRequest) { r.Des = strings.Repeat("x", 201) }, "You must provide blog description under 200 characters"},
		{"no banner", func(r *dto.CreateBlogRequest) { r.Banner = "" }, "You must provide blog banner to publish the blog"},
		{"no content", func(r *dto.CreateBlogRequest) { r.Content = models.Content{} }, "You must provide the blog content to publish the blog"},
		{"no tags", func(r *dto.CreateBlogRequest) { r.Tags = nil }, "Provide tags inorder to publish the blog, Maximum 10"},
		{"too many tags", func(r *dto.CreateBlogRequest) { r.Tags = make([]string, 11) }, "Provide tags inorder to publish the blog, Maximum 10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := publishReq("My Blog")
			tc.mut(&req)
			_, err := f.svc.Create(ctx, author, req)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}

	t.Run("draft skips publish checks", func(t *testing.T) {
		_, err := f.svc.Create(ctx, author, dto.CreateBlogRequest{Title: "Only a title", Draft: true})
		assert.NoError(t, err)
	})
}

func TestCreateBlogSlugAndCounters(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	slug, err := f.svc.Create(ctx, author, publishReq("Hello, World! 2024"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "Hello-World-2024"))
	assert.Greater(t, len(slug), len("Hello-World-2024"))

	user, err := f.users.FindByID(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.AccountInfo.TotalPosts)
	assert.Len(t, user.Blogs, 1)

	// Tags are stored lowercased.
	blog, err := f.blogs.FindBySlugIncReads(ctx, slug, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "testing"}, blog.Tags)

	// Drafts do not count as posts but are still linked to the author.
	_, err = f.svc.Create(ctx, author, dto.CreateBlogRequest{Title: "Draft", Draft: true})
	require.NoError(t, err)
	user, err = f.users.FindByID(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.AccountInfo.TotalPosts)
	assert.Len(t, user.Blogs, 2)
}

func TestCreateBlogEditPath(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	slug, err := f.svc.Create(ctx, author, publishReq("Original Title"))
	require.NoError(t, err)

	edit := publishReq("New Title")
	edit.ID = slug
	got, err := f.svc.Create(ctx, author, edit)
	require.NoError(t, err)
	assert.Equal(t, slug, got)

	blog, err := f.blogs.FindBySlugIncReads(ctx, slug, 0)
	require.NoError(t, err)
	assert.Equal(t, "New Title", blog.Title)

	// An edit never touches the post counter.
	user, err := f.users.FindByID(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.AccountInfo.TotalPosts)
}

func TestLatestPagination(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		b := &models.Blog{
			BlogID:      "blog-" + string(rune('a'+i)),
			Title:       "Blog",
			Author:      author,
			PublishedAt: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		_, err := f.blogs.Insert(ctx, b)
		require.NoError(t, err)
	}

	page1, err := f.svc.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page1, service.FeedPageSize)

	page2, err := f.svc.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Pages concatenate into the full newest-first ordering without overlap.
	seen := map[string]bool{}
	last := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range append(page1, page2...) {
		assert.False(t, seen[c.BlogID])
		seen[c.BlogID] = true
		assert.False(t, c.PublishedAt.After(last))
		last = c.PublishedAt
	}

	total, err := f.svc.CountLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	// Feed cards carry the author preview.
	assert.Equal(t, "alice", page1[0].Author.PersonalInfo.Username)
}

func TestLatestExcludesDrafts(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	_, err := f.blogs.Insert(ctx, &models.Blog{BlogID: "pub", Author: author, PublishedAt: time.Now()})
	require.NoError(t, err)
	_, err = f.blogs.Insert(ctx, &models.Blog{BlogID: "dra", Author: author, Draft: true, PublishedAt: time.Now()})
	require.NoError(t, err)

	cards, err := f.svc.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "pub", cards[0].BlogID)

	total, err := f.svc.CountLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTrendingOrder(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	mk := func(slug string, reads, likes int64) {
		_, err := f.blogs.Insert(ctx, &models.Blog{
			BlogID:      slug,
			Author:      author,
			Activity:    models.Activity{TotalReads: reads, TotalLikes: likes},
			PublishedAt: time.Now(),
		})
		require.NoError(t, err)
	}
	mk("mid", 10, 1)
	mk("top", 20, 0)
	mk("low", 10, 0)

	cards, err := f.svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "top", cards[0].BlogID)
	assert.Equal(t, "mid", cards[1].BlogID)
	assert.Equal(t, "low", cards[2].BlogID)
}

func TestSearchPrecedenceAndDefaults(t *testing.T) {
	f := newBlogFixture()
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	ctx := context.Background()

	mk := func(slug, title string, tags []string, author bson.ObjectID) {
		_, err := f.blogs.Insert(ctx, &models.Blog{
			BlogID: slug, Title: title, Tags: tags, Author: author, PublishedAt: time.Now(),
		})
		require.NoError(t, err)
	}
	mk("go-1", "Intro to Go", []string{"go"}, alice)
	mk("go-2", "More Go", []string{"go"}, alice)
	mk("go-3", "Go Generics", []string{"go"}, bob)
	mk("py-1", "Intro to Python", []string{"python"}, bob)

	t.Run("tag beats query", func(t *testing.T) {
		cards, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Tag: "python", Query: "Go", Limit: 10})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "py-1", cards[0].BlogID)
	})

	t.Run("query matches titles", func(t *testing.T) {
		cards, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Query: "intro", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("author fallback", func(t *testing.T) {
		cards, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Author: bob.Hex(), Limit: 10})
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("invalid author id", func(t *testing.T) {
		_, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Author: "nope"})
		require.Error(t, err)
	})

	t.Run("default page size", func(t *testing.T) {
		cards, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Tag: "go"})
		require.NoError(t, err)
		assert.Len(t, cards, service.SearchPageSize)
	})

	t.Run("eliminate blog", func(t *testing.T) {
		cards, err := f.svc.Search(ctx, dto.SearchBlogsRequest{Tag: "go", EliminateBlog: "go-2", Limit: 10})
		require.NoError(t, err)
		for _, c := range cards {
			assert.NotEqual(t, "go-2", c.BlogID)
		}
		assert.Len(t, cards, 2)
	})

	t.Run("count", func(t *testing.T) {
		n, err := f.svc.CountSearch(ctx, dto.SearchBlogsRequest{Tag: "go"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestGetBlogReadCounting(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	_, err := f.blogs.Insert(ctx, &models.Blog{BlogID: "slug-1", Title: "A Blog", Author: author, PublishedAt: time.Now()})
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, dto.GetBlogRequest{BlogID: "slug-1"})
	require.NoError(t, err)
	assert.Equal(t, "A Blog", detail.Title)
	assert.Equal(t, "alice", detail.Author.PersonalInfo.Username)
	// The returned snapshot predates the increment.
	assert.Equal(t, int64(0), detail.Activity.TotalReads)

	stored, err := f.blogs.FindBySlugIncReads(ctx, "slug-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Activity.TotalReads)

	user, err := f.users.FindByID(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.AccountInfo.TotalReads)

	// Edit mode reads nothing.
	_, err = f.svc.Get(ctx, dto.GetBlogRequest{BlogID: "slug-1", Mode: "edit"})
	require.NoError(t, err)
	stored, err = f.blogs.FindBySlugIncReads(ctx, "slug-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Activity.TotalReads)
}

func TestGetBlogDraftGate(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	ctx := context.Background()

	_, err := f.blogs.Insert(ctx, &models.Blog{BlogID: "draft-1", Author: author, Draft: true, PublishedAt: time.Now()})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, dto.GetBlogRequest{BlogID: "draft-1"})
	require.Error(t, err)
	assert.Equal(t, "You can not access draft blogs", err.Error())

	_, err = f.svc.Get(ctx, dto.GetBlogRequest{BlogID: "draft-1", Draft: true, Mode: "edit"})
	assert.NoError(t, err)
}

func TestLikeToggle(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	reader := f.addUser(t, "bob")
	ctx := context.Background()

	blogID, err := f.blogs.Insert(ctx, &models.Blog{BlogID: "slug-1", Author: author, PublishedAt: time.Now()})
	require.NoError(t, err)

	liked, err := f.svc.Like(ctx, reader, dto.LikeBlogRequest{ID: blogID.Hex()})
	require.NoError(t, err)
	assert.True(t, liked)

	blog, err := f.blogs.FindByID(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.Activity.TotalLikes)

	isLiked, err := f.svc.IsLiked(ctx, reader, blogID.Hex())
	require.NoError(t, err)
	assert.True(t, isLiked)

	require.Len(t, f.notes.Notes, 1)
	assert.Equal(t, models.NotificationLike, f.notes.Notes[0].Type)
	assert.Equal(t, author, f.notes.Notes[0].NotificationFor)
	assert.Equal(t, reader, f.notes.Notes[0].User)

	// Unlike reverses both the counter and the notification.
	liked, err = f.svc.Like(ctx, reader, dto.LikeBlogRequest{ID: blogID.Hex(), IsLikedByUser: true})
	require.NoError(t, err)
	assert.False(t, liked)

	blog, err = f.blogs.FindByID(ctx, blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), blog.Activity.TotalLikes)

	isLiked, err = f.svc.IsLiked(ctx, reader, blogID.Hex())
	require.NoError(t, err)
	assert.False(t, isLiked)
	assert.Empty(t, f.notes.Notes)
}

func TestLikeTwiceKeepsOneNotification(t *testing.T) {
	f := newBlogFixture()
	author := f.addUser(t, "alice")
	reader := f.addUser(t, "bob")
	ctx := context.Background()

	blogID, err := f.blogs.Insert(ctx, &models.Blog{BlogID: "slug-1", Author: author, PublishedAt: time.Now()})
	require.NoError(t, err)

	_, err = f.svc.Like(ctx, reader, dto.LikeBlogRequest{ID: blogID.Hex()})
	require.NoError(t, err)
	_, err = f.svc.Like(ctx, reader, dto.LikeBlogRequest{ID: blogID.Hex()})
	require.NoError(t, err)

	assert.Len(t, f.notes.Notes, 1)
}
