package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogspace/internal/models"
)

type CommentRepo struct {
	col *mongo.Collection
}

var _ CommentRepository = (*CommentRepo)(nil)

func NewCommentRepo(db *mongo.Database) *CommentRepo {
	return &CommentRepo{col: db.Collection("comments")}
}

func (r *CommentRepo) Insert(ctx context.Context, c *models.Comment) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return bson.NilObjectID, normalizeErr(err)
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *CommentRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, normalizeErr(err)
	}
	return &c, nil
}

func (r *CommentRepo) PushChild(ctx context.Context, parentID, childID bson.ObjectID) (*models.Comment, error) {
	var parent models.Comment
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": parentID},
		bson.M{"$push": bson.M{"children": childID}},
	).Decode(&parent)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return &parent, nil
}

func (r *CommentRepo) PullChild(ctx context.Context, parentID, childID bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": parentID},
		bson.M{"$pull": bson.M{"children": childID}})
	return err
}

func (r *CommentRepo) ListRoots(ctx context.Context, blogID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error) {
	return r.list(ctx, bson.M{"blog_id": blogID, "isReply": false}, skip, limit)
}

// ListReplies pages through a parent's immediate children. Children are
// exactly the comments whose parent field holds parentID, so the child
// array itself never needs to be walked here.
func (r *CommentRepo) ListReplies(ctx context.Context, parentID bson.ObjectID, skip, limit int64) ([]models.CommentWithAuthor, error) {
	return r.list(ctx, bson.M{"parent": parentID}, skip, limit)
}

func (r *CommentRepo) list(ctx context.Context, filter bson.M, skip, limit int64) ([]models.CommentWithAuthor, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "commentedAt", Value: -1}}}},
	}
	if skip > 0 {
		pipe = append(pipe, bson.D{{Key: "$skip", Value: skip}})
	}
	pipe = append(pipe,
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "commented_by",
			"foreignField": "_id",
			"as":           "commented_by_user",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$commented_by_user", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$project", Value: bson.M{
			"blog_id":     1,
			"blog_author": 1,
			"comment":     1,
			"children":    1,
			"commented_by": 1,
			"isReply":     1,
			"parent":      1,
			"commentedAt": 1,
			"commented_by_user.personal_info.fullname":    1,
			"commented_by_user.personal_info.username":    1,
			"commented_by_user.personal_info.profile_img": 1,
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	comments := []models.CommentWithAuthor{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Delete(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, normalizeErr(err)
	}
	return &c, nil
}
