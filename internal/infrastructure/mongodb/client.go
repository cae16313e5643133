package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ColUsers         = "users"
	ColBlogPosts     = "blogposts"
	ColInteractions  = "userinteractions"
	ColNotifications = "notifications"
)

// Connect opens a client, pings the deployment and returns a handle to
// the application database. The caller owns the client lifecycle.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the uniqueness constraints the handlers rely
// on: username/email, the single-admin rule, and one follow edge per
// ordered pair. Concurrent duplicate writes then fail at the store
// instead of racing past the request-level checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ColUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "role", Value: "admin"}}),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColInteractions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "follower", Value: 1}, {Key: "following", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColNotifications).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColBlogPosts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
