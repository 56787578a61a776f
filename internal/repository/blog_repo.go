package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogspace/internal/models"
)

type BlogRepo struct {
	col *mongo.Collection
}

var _ BlogRepository = (*BlogRepo)(nil)

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{col: db.Collection("blogs")}
}

func (r *BlogRepo) Insert(ctx context.Context, b *models.Blog) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return bson.NilObjectID, normalizeErr(err)
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *BlogRepo) Update(ctx context.Context, slug string, b *models.Blog) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"blog_id": slug}, bson.M{"$set": bson.M{
		"title":   b.Title,
		"des":     b.Des,
		"banner":  b.Banner,
		"content": b.Content,
		"tags":    b.Tags,
		"draft":   b.Draft,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return normalizeErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *BlogRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, normalizeErr(err)
	}
	return &b, nil
}

func (r *BlogRepo) FindBySlugIncReads(ctx context.Context, slug string, inc int64) (*models.Blog, error) {
	var b models.Blog
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"blog_id": slug},
		bson.M{"$inc": bson.M{"activity.total_reads": inc}},
	).Decode(&b)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return &b, nil
}

func (r *BlogRepo) Latest(ctx context.Context, skip, limit int64) ([]models.BlogCard, error) {
	return r.cards(ctx, bson.M{"draft": false},
		bson.D{{Key: "publishedAt", Value: -1}}, skip, limit)
}

func (r *BlogRepo) CountPublished(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"draft": false})
}

func (r *BlogRepo) Trending(ctx context.Context, limit int64) ([]models.BlogCard, error) {
	sort := bson.D{
		{Key: "activity.total_reads", Value: -1},
		{Key: "activity.total_likes", Value: -1},
		{Key: "publishedAt", Value: -1},
	}
	return r.cards(ctx, bson.M{"draft": false}, sort, 0, limit)
}

func (r *BlogRepo) Search(ctx context.Context, f SearchFilter, skip, limit int64) ([]models.BlogCard, error) {
	return r.cards(ctx, searchQuery(f),
		bson.D{{Key: "publishedAt", Value: -1}}, skip, limit)
}

func (r *BlogRepo) CountSearch(ctx context.Context, f SearchFilter) (int64, error) {
	return r.col.CountDocuments(ctx, searchQuery(f))
}

// searchQuery honors exactly one filter mode: tag, then free-text title
// match, then author.
func searchQuery(f SearchFilter) bson.M {
	switch {
	case f.Tag != "":
		q := bson.M{"tags": f.Tag, "draft": false}
		if f.EliminateBlog != "" {
			q["blog_id"] = bson.M{"$ne": f.EliminateBlog}
		}
		return q
	case f.Query != "":
		return bson.M{"title": bson.M{"$regex": f.Query, "$options": "i"}, "draft": false}
	default:
		return bson.M{"author": f.Author, "draft": false}
	}
}

// cards runs the shared feed pipeline: filter, order, page, join the author
// preview, strip everything the card does not show.
func (r *BlogRepo) cards(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.BlogCard, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: sort}},
	}
	if skip > 0 {
		pipe = append(pipe, bson.D{{Key: "$skip", Value: skip}})
	}
	pipe = append(pipe,
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":         0,
			"blog_id":     1,
			"title":       1,
			"des":         1,
			"banner":      1,
			"activity":    1,
			"tags":        1,
			"publishedAt": 1,
			"author.personal_info.fullname":    1,
			"author.personal_info.username":    1,
			"author.personal_info.profile_img": 1,
		}}},
	)

	cur, err := r.col.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	blogs := []models.BlogCard{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepo) IncLikes(ctx context.Context, id bson.ObjectID, delta int64) (*models.Blog, error) {
	var b models.Blog
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"activity.total_likes": delta}},
	).Decode(&b)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return &b, nil
}

func (r *BlogRepo) AttachComment(ctx context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": blogID}, bson.M{
		"$push": bson.M{"comments": commentID},
		"$inc": bson.M{
			"activity.total_comments":        1,
			"activity.total_parent_comments": parentDelta,
		},
	})
	return err
}

func (r *BlogRepo) DetachComment(ctx context.Context, blogID, commentID bson.ObjectID, parentDelta int64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": blogID}, bson.M{
		"$pull": bson.M{"comments": commentID},
		"$inc": bson.M{
			"activity.total_comments":        -1,
			"activity.total_parent_comments": parentDelta,
		},
	})
	return err
}
