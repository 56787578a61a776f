package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Blog document stored in "blogs".
type Blog struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	BlogID      string          `bson:"blog_id" json:"blog_id"`
	Title       string          `bson:"title" json:"title"`
	Banner      string          `bson:"banner" json:"banner"`
	Des         string          `bson:"des" json:"des"`
	Content     Content         `bson:"content" json:"content"`
	Tags        []string        `bson:"tags" json:"tags"`
	Author      bson.ObjectID   `bson:"author" json:"author"`
	Activity    Activity        `bson:"activity" json:"activity"`
	Comments    []bson.ObjectID `bson:"comments" json:"-"`
	Draft       bool            `bson:"draft" json:"draft"`
	PublishedAt time.Time       `bson:"publishedAt" json:"publishedAt"`
}

// Content is the editor output: an ordered block sequence. Blocks are kept
// schemaless, the server never looks inside them.
type Content struct {
	Time    int64    `bson:"time,omitempty" json:"time,omitempty"`
	Blocks  []bson.M `bson:"blocks" json:"blocks"`
	Version string   `bson:"version,omitempty" json:"version,omitempty"`
}

// Activity holds the per-blog counters. Single-field $inc only, so each
// counter is atomic on its own but not against its siblings.
type Activity struct {
	TotalLikes          int64 `bson:"total_likes" json:"total_likes"`
	TotalComments       int64 `bson:"total_comments" json:"total_comments"`
	TotalReads          int64 `bson:"total_reads" json:"total_reads"`
	TotalParentComments int64 `bson:"total_parent_comments" json:"total_parent_comments"`
}

// BlogCard is the feed projection with the author preview joined in.
type BlogCard struct {
	BlogID      string        `bson:"blog_id" json:"blog_id"`
	Title       string        `bson:"title" json:"title"`
	Des         string        `bson:"des" json:"des"`
	Banner      string        `bson:"banner" json:"banner"`
	Activity    Activity      `bson:"activity" json:"activity"`
	Tags        []string      `bson:"tags" json:"tags"`
	PublishedAt time.Time     `bson:"publishedAt" json:"publishedAt"`
	Author      AuthorPreview `bson:"author" json:"author"`
}
