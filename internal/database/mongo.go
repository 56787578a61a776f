package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func Disconnect(client *mongo.Client) error {
	return client.Disconnect(context.Background())
}

// EnsureIndexes creates the indexes the mutation paths rely on. Uniqueness
// on email/username/slug backs the duplicate-key (11000) handling in the
// repositories; the partial index on like notifications is what makes
// re-liking a toggle instead of a pile-up.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "personal_info.email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "personal_info.username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	blogs := []mongo.IndexModel{
		{Keys: bson.D{{Key: "blog_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "draft", Value: 1}, {Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := db.Collection("blogs").Indexes().CreateMany(ctx, blogs); err != nil {
		return fmt.Errorf("blogs indexes: %w", err)
	}

	comments := []mongo.IndexModel{
		{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "isReply", Value: 1}, {Key: "commentedAt", Value: -1}}},
		{Keys: bson.D{{Key: "parent", Value: 1}}},
	}
	if _, err := db.Collection("comments").Indexes().CreateMany(ctx, comments); err != nil {
		return fmt.Errorf("comments indexes: %w", err)
	}

	notifications := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "blog", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"type": "like"}),
		},
		{Keys: bson.D{{Key: "comment", Value: 1}}},
		{Keys: bson.D{{Key: "notification_for", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection("notifications").Indexes().CreateMany(ctx, notifications); err != nil {
		return fmt.Errorf("notifications indexes: %w", err)
	}
	return nil
}
