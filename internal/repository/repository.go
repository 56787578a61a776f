package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogspace/internal/errs"
	"blogspace/internal/models"
)

// SearchFilter selects at most one filter mode; Tag beats Query beats
// Author when several are set.
type SearchFilter struct {
	Tag           string
	Query         string
	Author        bson.ObjectID
	EliminateBlog string
}

type UserRepository interface {
	Insert(ctx context.Context, u *models.User) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SearchByUsername(ctx context.Context, query string, limit int64) ([]models.AuthorPreview, error)
	// RecordNewBlog bumps account_info.total_posts and appends the blog ref.
	RecordNewBlog(ctx context.Context, userID, blogID bson.ObjectID, postsDelta int64) error
	IncTotalReads(ctx context.Context, userID bson.ObjectID, delta int64) error
	UpdatePassword(ctx context.Context, userID bson.ObjectID, hash string) error
}

type BlogRepository interface {
	Insert(ctx context.Context, b *models.Blog) (bson.ObjectID, error)
	// Update overwrites the editable fields of the blog addressed by slug.
	Update(ctx context.Context, slug string, b *models.Blog) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Blog, error)
	// FindBySlugIncReads fetches a blog and bumps activity.total_reads in
	// one atomic findOneAndUpdate; the returned document predates the bump.
	FindBySlugIncReads(ctx context.Context, slug string, inc int64) (*models.Blog, error)
	Latest(ctx context.Context, skip, limit int64) ([]models.BlogCard, error)
	CountPublished(ctx context.Context) (int64, error)
	Trending(ctx context.Context, limit int64) ([]models.BlogCard, error)
	Search(ctx context.Context, f SearchFilter, skip, limit int64) ([]models.BlogCard, error)
	CountSearch(ctx context.Context, f SearchFilter) (int64, error)
	// IncLikes moves activity.total_likes by delta and returns the blog.
	IncLikes(ctx context.Context, id bson.ObjectID, delta int64) (*models.Blog, error)
	// AttachComment pushes the comment ref and bumps total_comments by one
	// and total_parent_comments by parentDelta (1 for roots, 0 for replies).
	AttachComment(ctx context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error
	// DetachComment is the inverse: pull the ref, total_comments -1,
	// total_parent_comments by parentDelta (-1 for roots, 0 for replies).
	DetachComment(ctx context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error
}

type CommentRepository interface {
	Insert(ctx context.Context, c *models.Comment) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	// PushChild appends childID to the parent's child list and returns the
	// parent, whose author is the reply-notification recipient.
	PushChild(ctx context.Context, parentID, childID bson.ObjectID) (*models.Comment, error)
	PullChild(ctx context.Context, parentID, childID bson.ObjectID) error
	ListRoots(ctx context.Context, blogID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error)
	ListReplies(ctx context.Context, parentID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error)
	// Delete removes a single comment document and returns it.
	Delete(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	DeleteLike(ctx context.Context, actor, blogID bson.ObjectID) error
	LikeExists(ctx context.Context, actor, blogID bson.ObjectID) (bool, error)
	// DeleteForComment removes every notification referencing the comment,
	// whether as its comment or as its reply target.
	DeleteForComment(ctx context.Context, commentID bson.ObjectID) error
}

// TxRunner runs fn inside a store transaction. The comment-delete cascade
// is the one caller: a partial cascade must abort rather than orphan
// descendants and leave counters stale.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// normalizeErr folds driver errors into the shared taxonomy: missing
// documents and duplicate-key (11000) writes get stable sentinels.
func normalizeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateKey
	}
	return err
}
