package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogspace/internal/models"
)

type NotificationRepo struct {
	col *mongo.Collection
}

var _ NotificationRepository = (*NotificationRepo)(nil)

func NewNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{col: db.Collection("notifications")}
}

func (r *NotificationRepo) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.col.InsertOne(ctx, n)
	return normalizeErr(err)
}

func (r *NotificationRepo) DeleteLike(ctx context.Context, actor, blogID bson.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{
		"user": actor,
		"blog": blogID,
		"type": models.NotificationLike,
	})
	return err
}

func (r *NotificationRepo) LikeExists(ctx context.Context, actor, blogID bson.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"user": actor,
		"blog": blogID,
		"type": models.NotificationLike,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *NotificationRepo) DeleteForComment(ctx context.Context, commentID bson.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"comment": commentID},
		{"reply": commentID},
		{"replied_on_comment": commentID},
	}})
	return err
}
