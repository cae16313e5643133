package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FollowEdge is a directed follower->following relationship. The ordered
// pair is unique; a user cannot follow themselves or the admin.
type FollowEdge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Follower  primitive.ObjectID `bson:"follower" json:"follower"`
	Following primitive.ObjectID `bson:"following" json:"following"`
}
