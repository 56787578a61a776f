package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment document stored in "comments". Comments form a forest: parent and
// children hold ids, never embedded documents, so there is no cyclic
// ownership to worry about. Reply depth is computed by the reader from the
// parent it expanded, it is not persisted.
type Comment struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	BlogID      bson.ObjectID   `bson:"blog_id" json:"blog_id"`
	BlogAuthor  bson.ObjectID   `bson:"blog_author" json:"blog_author"`
	Comment     string          `bson:"comment" json:"comment"`
	Children    []bson.ObjectID `bson:"children" json:"children"`
	CommentedBy bson.ObjectID   `bson:"commented_by" json:"commented_by"`
	IsReply     bool            `bson:"isReply" json:"isReply"`
	Parent      *bson.ObjectID  `bson:"parent,omitempty" json:"parent,omitempty"`
	CommentedAt time.Time       `bson:"commentedAt" json:"commentedAt"`
}

// IsRoot reports whether the comment counts against the blog's
// parent-comment counter.
func (c *Comment) IsRoot() bool { return c.Parent == nil }

// CommentWithAuthor is a comment with the commenter preview joined in.
// The outer field shadows the embedded commented_by id on marshal, so the
// client sees the populated user object.
type CommentWithAuthor struct {
	Comment         `bson:",inline"`
	CommentedByUser AuthorPreview `bson:"commented_by_user" json:"commented_by"`
}
