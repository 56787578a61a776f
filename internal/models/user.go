package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User document stored in "users".
type User struct {
	ID           bson.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	PersonalInfo PersonalInfo    `bson:"personal_info" json:"personal_info"`
	AccountInfo  AccountInfo     `bson:"account_info" json:"account_info"`
	GoogleAuth   bool            `bson:"google_auth" json:"-"`
	Blogs        []bson.ObjectID `bson:"blogs" json:"-"`
	JoinedAt     time.Time       `bson:"joinedAt" json:"joinedAt"`
}

type PersonalInfo struct {
	Fullname   string `bson:"fullname" json:"fullname"`
	Email      string `bson:"email" json:"email"`
	Password   string `bson:"password,omitempty" json:"-"`
	Username   string `bson:"username" json:"username"`
	Bio        string `bson:"bio" json:"bio"`
	ProfileImg string `bson:"profile_img" json:"profile_img"`
}

// AccountInfo holds the denormalized per-account counters. Both stay
// non-negative; they are only moved by $inc updates.
type AccountInfo struct {
	TotalPosts int64 `bson:"total_posts" json:"total_posts"`
	TotalReads int64 `bson:"total_reads" json:"total_reads"`
}

// AuthorPreview is the projection joined into feed and comment listings,
// and the shape returned by user search.
type AuthorPreview struct {
	PersonalInfo AuthorPersonalInfo `bson:"personal_info" json:"personal_info"`
}

type AuthorPersonalInfo struct {
	Fullname   string `bson:"fullname" json:"fullname"`
	Username   string `bson:"username" json:"username"`
	ProfileImg string `bson:"profile_img" json:"profile_img"`
}
