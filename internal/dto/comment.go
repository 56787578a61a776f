package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"blogspace/internal/models"
)

type AddCommentRequest struct {
	BlogID     string `json:"_id"`
	Comment    string `json:"comment"`
	BlogAuthor string `json:"blog_author"`
	ReplyingTo string `json:"replying_to"`
}

type AddCommentResponse struct {
	Comment     string          `json:"comment"`
	CommentedAt time.Time       `json:"commentedAt"`
	ID          bson.ObjectID   `json:"_id"`
	UserID      bson.ObjectID   `json:"user_id"`
	Children    []bson.ObjectID `json:"children"`
}

type GetCommentsRequest struct {
	BlogID string `json:"blog_id"`
	Skip   int64  `json:"skip"`
}

type GetRepliesRequest struct {
	ID   string `json:"_id"`
	Skip int64  `json:"skip"`
}

type RepliesResponse struct {
	Replies []models.CommentWithAuthor `json:"replies"`
}

type DeleteCommentRequest struct {
	ID string `json:"_id"`
}

type DeleteCommentResponse struct {
	Status string `json:"status"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadURL"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
