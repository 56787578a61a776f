package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/dto"
	"blogspace/internal/errs"
	"blogspace/internal/mocks"
	"blogspace/internal/models"
	"blogspace/internal/service"
)

type commentFixture struct {
	users    *mocks.MockUserRepo
	blogs    *mocks.MockBlogRepo
	comments *mocks.MockCommentRepo
	notes    *mocks.MockNotificationRepo
	tx       *mocks.MockTxRunner
	svc      *service.CommentService

	author bson.ObjectID
	reader bson.ObjectID
	blogID bson.ObjectID
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	ctx := context.Background()

	users := mocks.NewMockUserRepo()
	blogs := mocks.NewMockBlogRepo(users)
	comments := mocks.NewMockCommentRepo(users)
	notes := mocks.NewMockNotificationRepo()
	tx := mocks.NewMockTxRunner()

	f := &commentFixture{
		users:    users,
		blogs:    blogs,
		comments: comments,
		notes:    notes,
		tx:       tx,
		svc:      service.NewCommentService(comments, blogs, notes, tx, zerolog.Nop()),
	}

	var err error
	f.author, err = users.Insert(ctx, &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Alice", Email: "alice@example.com", Username: "alice",
	}})
	require.NoError(t, err)
	f.reader, err = users.Insert(ctx, &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Bob", Email: "bob@example.com", Username: "bob",
	}})
	require.NoError(t, err)
	f.blogID, err = blogs.Insert(ctx, &models.Blog{
		BlogID: "slug-1", Title: "A Blog", Author: f.author, PublishedAt: time.Now(),
	})
	require.NoError(t, err)
	return f
}

func (f *commentFixture) addComment(t *testing.T, by bson.ObjectID, text, replyingTo string) dto.AddCommentResponse {
	t.Helper()
	resp, err := f.svc.Add(context.Background(), by, dto.AddCommentRequest{
		BlogID:     f.blogID.Hex(),
		BlogAuthor: f.author.Hex(),
		Comment:    text,
		ReplyingTo: replyingTo,
	})
	require.NoError(t, err)
	return resp
}

func TestAddCommentValidation(t *testing.T) {
	f := newCommentFixture(t)
	_, err := f.svc.Add(context.Background(), f.reader, dto.AddCommentRequest{
		BlogID: f.blogID.Hex(), BlogAuthor: f.author.Hex(),
	})
	require.Error(t, err)
	assert.Equal(t, "Write something to leave a comment", err.Error())
}

func TestAddRootComment(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	resp := f.addComment(t, f.reader, "nice post", "")
	assert.Equal(t, "nice post", resp.Comment)
	assert.Equal(t, f.reader, resp.UserID)
	assert.Empty(t, resp.Children)

	blog, err := f.blogs.FindByID(ctx, f.blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.Activity.TotalComments)
	assert.Equal(t, int64(1), blog.Activity.TotalParentComments)
	assert.Contains(t, blog.Comments, resp.ID)

	require.Len(t, f.notes.Notes, 1)
	note := f.notes.Notes[0]
	assert.Equal(t, models.NotificationComment, note.Type)
	assert.Equal(t, f.author, note.NotificationFor)
	assert.Equal(t, f.reader, note.User)
	require.NotNil(t, note.Comment)
	assert.Equal(t, resp.ID, *note.Comment)
}

func TestAddReply(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root := f.addComment(t, f.reader, "nice post", "")
	reply := f.addComment(t, f.author, "thanks", root.ID.Hex())

	// Replies raise the total but not the parent-comment counter.
	blog, err := f.blogs.FindByID(ctx, f.blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), blog.Activity.TotalComments)
	assert.Equal(t, int64(1), blog.Activity.TotalParentComments)

	parent, err := f.comments.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Contains(t, parent.Children, reply.ID)

	child, err := f.comments.FindByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.True(t, child.IsReply)
	require.NotNil(t, child.Parent)
	assert.Equal(t, root.ID, *child.Parent)

	// The reply notifies the parent's author, not the blog's.
	require.Len(t, f.notes.Notes, 2)
	note := f.notes.Notes[1]
	assert.Equal(t, models.NotificationReply, note.Type)
	assert.Equal(t, f.reader, note.NotificationFor)
	require.NotNil(t, note.RepliedOnComment)
	assert.Equal(t, root.ID, *note.RepliedOnComment)
}

func TestListRootsAndReplies(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	var rootIDs []bson.ObjectID
	for i := 0; i < 7; i++ {
		resp := f.addComment(t, f.reader, "root", "")
		rootIDs = append(rootIDs, resp.ID)
		time.Sleep(time.Millisecond)
	}
	reply := f.addComment(t, f.author, "reply", rootIDs[0].Hex())

	page1, err := f.svc.Roots(ctx, dto.GetCommentsRequest{BlogID: f.blogID.Hex()})
	require.NoError(t, err)
	require.Len(t, page1, service.CommentPageSize)
	for _, c := range page1 {
		assert.False(t, c.IsReply)
		assert.Equal(t, "bob", c.CommentedByUser.PersonalInfo.Username)
	}

	page2, err := f.svc.Roots(ctx, dto.GetCommentsRequest{BlogID: f.blogID.Hex(), Skip: service.CommentPageSize})
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	replies, err := f.svc.Replies(ctx, dto.GetRepliesRequest{ID: rootIDs[0].Hex()})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)
	assert.Equal(t, "alice", replies[0].CommentedByUser.PersonalInfo.Username)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root := f.addComment(t, f.reader, "nice post", "")

	stranger, err := f.users.Insert(ctx, &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Eve", Email: "eve@example.com", Username: "eve",
	}})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, stranger, root.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, "You can not delete the comment", err.Error())

	// Still there.
	_, err = f.comments.FindByID(ctx, root.ID)
	assert.NoError(t, err)

	// The blog's author may delete anyone's comment.
	err = f.svc.Delete(ctx, f.author, root.ID.Hex())
	require.NoError(t, err)
	_, err = f.comments.FindByID(ctx, root.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteCommentCascade(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root := f.addComment(t, f.reader, "root", "")
	replyA := f.addComment(t, f.author, "reply a", root.ID.Hex())
	replyB := f.addComment(t, f.reader, "reply b", root.ID.Hex())
	nested := f.addComment(t, f.author, "nested", replyA.ID.Hex())
	other := f.addComment(t, f.reader, "other root", "")

	err := f.svc.Delete(ctx, f.reader, root.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Calls)

	// The whole subtree is gone, the unrelated root survives.
	for _, id := range []bson.ObjectID{root.ID, replyA.ID, replyB.ID, nested.ID} {
		_, err := f.comments.FindByID(ctx, id)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	}
	_, err = f.comments.FindByID(ctx, other.ID)
	assert.NoError(t, err)

	// Counters settle to just the surviving root.
	blog, err := f.blogs.FindByID(ctx, f.blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.Activity.TotalComments)
	assert.Equal(t, int64(1), blog.Activity.TotalParentComments)
	assert.Equal(t, []bson.ObjectID{other.ID}, blog.Comments)

	// Every notification pointing into the subtree is cleared.
	for _, id := range []bson.ObjectID{root.ID, replyA.ID, replyB.ID, nested.ID} {
		assert.Empty(t, f.notes.ForComment(id))
	}
	assert.Len(t, f.notes.ForComment(other.ID), 1)
}

func TestDeleteReplyDetachesFromParent(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	root := f.addComment(t, f.reader, "root", "")
	reply := f.addComment(t, f.author, "reply", root.ID.Hex())

	err := f.svc.Delete(ctx, f.author, reply.ID.Hex())
	require.NoError(t, err)

	parent, err := f.comments.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.NotContains(t, parent.Children, reply.ID)

	// A reply delete leaves the parent-comment counter alone.
	blog, err := f.blogs.FindByID(ctx, f.blogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.Activity.TotalComments)
	assert.Equal(t, int64(1), blog.Activity.TotalParentComments)
}

func TestDeleteCommentBadID(t *testing.T) {
	f := newCommentFixture(t)
	err := f.svc.Delete(context.Background(), f.reader, "not-hex")
	require.Error(t, err)
	assert.Equal(t, "invalid comment id", err.Error())
}
