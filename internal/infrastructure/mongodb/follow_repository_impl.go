package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(ColInteractions)}
}

func (r *FollowRepository) edgeFilter(followerID, followingID string) (bson.M, error) {
	follower, err := objectID(followerID)
	if err != nil {
		return nil, err
	}
	following, err := objectID(followingID)
	if err != nil {
		return nil, err
	}
	return bson.M{"follower": follower, "following": following}, nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	filter, err := r.edgeFilter(followerID, followingID)
	if err != nil {
		return false, err
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FollowRepository) Create(ctx context.Context, followerID, followingID string) error {
	follower, err := objectID(followerID)
	if err != nil {
		return err
	}
	following, err := objectID(followingID)
	if err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, entity.FollowEdge{
		Follower:  follower,
		Following: following,
	})
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *FollowRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	follower, err := objectID(followerID)
	if err != nil {
		return nil, err
	}
	cur, err := r.col.Find(ctx, bson.M{"follower": follower})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var edges []struct {
		Following primitive.ObjectID `bson:"following"`
	}
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.Following.Hex())
	}
	return ids, nil
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
