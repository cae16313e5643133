package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(ColUsers)}
}

// objectID parses a hex id; unparseable ids behave as missing documents.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (string, error) {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	u.ID = oid
	return oid.Hex(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	u := &entity.User{}
	if err := r.col.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"role": entity.RoleAdmin})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, username, email string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"username": username,
		"email":    email,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetDisabled(ctx context.Context, id string, disabled bool) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"isDisabled": disabled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]entity.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	users := []entity.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
