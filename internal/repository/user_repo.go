package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogspace/internal/models"
)

type UserRepo struct {
	col *mongo.Collection
}

var _ UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

func (r *UserRepo) Insert(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return bson.NilObjectID, normalizeErr(err)
	}
	return res.InsertedID.(bson.ObjectID), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, normalizeErr(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"personal_info.email": email}).Decode(&u); err != nil {
		return nil, normalizeErr(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"personal_info.username": username},
		options.FindOne().SetProjection(bson.M{
			"personal_info.password": 0,
			"google_auth":            0,
			"blogs":                  0,
		})).Decode(&u)
	if err != nil {
		return nil, normalizeErr(err)
	}
	return &u, nil
}

func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"personal_info.username": username},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) SearchByUsername(ctx context.Context, query string, limit int64) ([]models.AuthorPreview, error) {
	filter := bson.M{"personal_info.username": bson.M{"$regex": query, "$options": "i"}}
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{
			"_id":                       0,
			"personal_info.fullname":    1,
			"personal_info.username":    1,
			"personal_info.profile_img": 1,
		})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.AuthorPreview{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) RecordNewBlog(ctx context.Context, userID, blogID bson.ObjectID, postsDelta int64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$inc":  bson.M{"account_info.total_posts": postsDelta},
		"$push": bson.M{"blogs": blogID},
	})
	return err
}

func (r *UserRepo) IncTotalReads(ctx context.Context, userID bson.ObjectID, delta int64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"account_info.total_reads": delta}})
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID bson.ObjectID, hash string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"personal_info.password": hash}})
	return err
}
