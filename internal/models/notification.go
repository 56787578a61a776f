package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification document stored in "notifications". Append-only except for
// the two delete paths: undoing a like and cascading a comment delete.
// A partial unique index on (user, blog, type=like) keeps re-likes from
// piling up duplicates.
type Notification struct {
	ID               bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Type             string         `bson:"type" json:"type"`
	Blog             bson.ObjectID  `bson:"blog" json:"blog"`
	NotificationFor  bson.ObjectID  `bson:"notification_for" json:"notification_for"`
	User             bson.ObjectID  `bson:"user" json:"user"`
	Comment          *bson.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Reply            *bson.ObjectID `bson:"reply,omitempty" json:"reply,omitempty"`
	RepliedOnComment *bson.ObjectID `bson:"replied_on_comment,omitempty" json:"replied_on_comment,omitempty"`
	Seen             bool           `bson:"seen" json:"seen"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
}
