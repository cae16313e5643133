package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(ColNotifications)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

// ListUnread returns unread notifications newest first with the
// referenced post title joined in for comment entries. The postId
// reference is stripped from follow entries before the rows leave the
// store layer.
func (r *NotificationRepository) ListUnread(ctx context.Context, userID string) ([]entity.NotificationView, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": uid, "isRead": false}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ColBlogPosts,
			"localField":   "postId",
			"foreignField": "_id",
			"as":           "post",
		}}},
		{{Key: "$project", Value: bson.M{
			"type":       1,
			"postId":     1,
			"postTitle":  bson.M{"$arrayElemAt": bson.A{"$post.title", 0}},
			"followerId": 1,
			"isRead":     1,
			"createdAt":  1,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	views := []entity.NotificationView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].Type == entity.NotificationFollow {
			views[i].PostID = nil
			views[i].PostTitle = ""
		}
	}
	return views, nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
