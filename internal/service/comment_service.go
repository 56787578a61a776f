package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/dto"
	"blogspace/internal/errs"
	"blogspace/internal/models"
	"blogspace/internal/repository"
)

// CommentPageSize bounds root-comment and reply listings.
const CommentPageSize = 5

// CommentService maintains the comment forest: inserting a comment links it
// into its parent's child list and moves the blog's denormalized counters;
// deleting one walks its subtree depth-first. Children are assigned once at
// creation, so the walk cannot cycle.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	notes    repository.NotificationRepository
	tx       repository.TxRunner
	log      zerolog.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	notes repository.NotificationRepository,
	tx repository.TxRunner,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, notes: notes, tx: tx, log: log}
}

// Add creates a comment. A root comment bumps both of the blog's comment
// counters and notifies the blog's author; a reply bumps only the total,
// joins its parent's child list and notifies the parent's author instead.
func (s *CommentService) Add(ctx context.Context, userID bson.ObjectID, req dto.AddCommentRequest) (dto.AddCommentResponse, error) {
	if len(req.Comment) == 0 {
		return dto.AddCommentResponse{}, errs.Validation("Write something to leave a comment")
	}
	blogID, err := bson.ObjectIDFromHex(req.BlogID)
	if err != nil {
		return dto.AddCommentResponse{}, errs.Validation("invalid blog id")
	}
	blogAuthor, err := bson.ObjectIDFromHex(req.BlogAuthor)
	if err != nil {
		return dto.AddCommentResponse{}, errs.Validation("invalid blog author id")
	}

	var parentID *bson.ObjectID
	if req.ReplyingTo != "" {
		pid, perr := bson.ObjectIDFromHex(req.ReplyingTo)
		if perr != nil {
			return dto.AddCommentResponse{}, errs.Validation("invalid parent comment id")
		}
		parentID = &pid
	}

	comment := &models.Comment{
		BlogID:      blogID,
		BlogAuthor:  blogAuthor,
		Comment:     req.Comment,
		Children:    []bson.ObjectID{},
		CommentedBy: userID,
		IsReply:     parentID != nil,
		Parent:      parentID,
		CommentedAt: time.Now().UTC(),
	}
	id, err := s.comments.Insert(ctx, comment)
	if err != nil {
		return dto.AddCommentResponse{}, err
	}
	comment.ID = id

	parentDelta := int64(1)
	if parentID != nil {
		parentDelta = 0
	}
	if err := s.blogs.AttachComment(ctx, blogID, id, parentDelta); err != nil {
		return dto.AddCommentResponse{}, err
	}

	note := &models.Notification{
		Type:            models.NotificationComment,
		Blog:            blogID,
		NotificationFor: blogAuthor,
		User:            userID,
		Comment:         &id,
		CreatedAt:       comment.CommentedAt,
	}
	if parentID != nil {
		parent, perr := s.comments.PushChild(ctx, *parentID, id)
		if perr != nil {
			return dto.AddCommentResponse{}, perr
		}
		note.Type = models.NotificationReply
		note.NotificationFor = parent.CommentedBy
		note.RepliedOnComment = parentID
	}
	if err := s.notes.Insert(ctx, note); err != nil {
		return dto.AddCommentResponse{}, err
	}

	return dto.AddCommentResponse{
		Comment:     comment.Comment,
		CommentedAt: comment.CommentedAt,
		ID:          comment.ID,
		UserID:      userID,
		Children:    comment.Children,
	}, nil
}

func (s *CommentService) Roots(ctx context.Context, req dto.GetCommentsRequest) ([]models.CommentWithAuthor, error) {
	blogID, err := bson.ObjectIDFromHex(req.BlogID)
	if err != nil {
		return nil, errs.Validation("invalid blog id")
	}
	return s.comments.ListRoots(ctx, blogID, req.Skip, CommentPageSize)
}

func (s *CommentService) Replies(ctx context.Context, req dto.GetRepliesRequest) ([]models.CommentWithAuthor, error) {
	parentID, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, errs.Validation("invalid comment id")
	}
	return s.comments.ListReplies(ctx, parentID, req.Skip, CommentPageSize)
}

// Delete removes a comment and its whole subtree. Only the comment's author
// or the blog's author may do this. The cascade runs in one transaction so
// a mid-walk failure rolls back instead of stranding descendants with stale
// counters.
func (s *CommentService) Delete(ctx context.Context, userID bson.ObjectID, idHex string) error {
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return errs.Validation("invalid comment id")
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if userID != comment.CommentedBy && userID != comment.BlogAuthor {
		return errs.Authorization("You can not delete the comment")
	}

	var removed int
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		removed = 0
		return s.deleteTree(txCtx, comment, &removed)
	})
	if err != nil {
		return err
	}
	s.log.Info().
		Str("comment_id", idHex).
		Int("removed", removed).
		Msg("comment subtree deleted")
	return nil
}

// deleteTree removes one comment and recurses into its children: drop the
// document, detach it from its parent's child list, clear notifications
// that point at it, and settle the blog counters. The parent counter only
// moves for root comments.
func (s *CommentService) deleteTree(ctx context.Context, c *models.Comment, removed *int) error {
	if _, err := s.comments.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	*removed++

	if c.Parent != nil {
		if err := s.comments.PullChild(ctx, *c.Parent, c.ID); err != nil {
			return err
		}
	}
	if err := s.notes.DeleteForComment(ctx, c.ID); err != nil {
		return err
	}

	parentDelta := int64(0)
	if c.IsRoot() {
		parentDelta = -1
	}
	if err := s.blogs.DetachComment(ctx, c.BlogID, c.ID, parentDelta); err != nil {
		return err
	}

	for _, childID := range c.Children {
		child, err := s.comments.FindByID(ctx, childID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return err
		}
		if err := s.deleteTree(ctx, child, removed); err != nil {
			return err
		}
	}
	return nil
}
