package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types. Follow notifications carry the follower reference,
// comment notifications carry the post reference.
const (
	NotificationFollow  = "follow"
	NotificationComment = "comment"
)

// Notification is an advisory event written as a side effect of a
// follow or rate/comment action. Delivery is best-effort: losing one is
// accepted, it is not part of the system of record.
type Notification struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID  `bson:"user" json:"user"`
	Type       string              `bson:"type" json:"type"`
	PostID     *primitive.ObjectID `bson:"postId,omitempty" json:"postId,omitempty"`
	FollowerID *primitive.ObjectID `bson:"followerId,omitempty" json:"followerId,omitempty"`
	IsRead     bool                `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}

// NotificationView shapes a notification for the unread listing: the
// post title is resolved for comment entries and the post reference is
// stripped from follow entries so clients never see a stale field.
type NotificationView struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	Type       string              `bson:"type" json:"type"`
	PostID     *primitive.ObjectID `bson:"postId,omitempty" json:"postId,omitempty"`
	PostTitle  string              `bson:"postTitle,omitempty" json:"postTitle,omitempty"`
	FollowerID *primitive.ObjectID `bson:"followerId,omitempty" json:"followerId,omitempty"`
	IsRead     bool                `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
