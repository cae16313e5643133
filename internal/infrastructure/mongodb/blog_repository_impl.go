package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

type BlogRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{
		col:   db.Collection(ColBlogPosts),
		users: db.Collection(ColUsers),
	}
}

func (r *BlogRepository) Create(ctx context.Context, p *entity.BlogPost) (string, error) {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	oid := res.InsertedID.(primitive.ObjectID)
	p.ID = oid
	return oid.Hex(), nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	p := &entity.BlogPost{}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// lookupAuthor joins the author reference onto its user document so a
// later $project can surface the username.
func lookupAuthor() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         ColUsers,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: "$author"}},
	}
}

// projectPostView shapes the full post view. $avg over an empty array
// yields null, which decodes into a nil AverageRating.
func projectPostView() bson.D {
	return bson.D{{Key: "$project", Value: bson.M{
		"title":         1,
		"content":       1,
		"category":      1,
		"author":        "$author.username",
		"feedback":      1,
		"created_at":    1,
		"isDisabled":    1,
		"averageRating": bson.M{"$avg": "$feedback.rating"},
	}}}
}

func (r *BlogRepository) GetView(ctx context.Context, id string) (*entity.PostView, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
	}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline, projectPostView())

	views, err := r.aggregateViews(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, repository.ErrNotFound
	}
	return &views[0], nil
}

func (r *BlogRepository) Update(ctx context.Context, id, title, content, category string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":    title,
		"content":  content,
		"category": category,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) List(ctx context.Context, filter repository.PostFilter, page repository.PageOpts) ([]entity.PostView, error) {
	var authorIDs []primitive.ObjectID
	if filter.Author != "" {
		ids, err := r.matchAuthorIDs(ctx, filter.Author)
		if err != nil {
			return nil, err
		}
		authorIDs = ids
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildPostFilter(filter, authorIDs)}},
		{{Key: "$sort", Value: sortDoc(page)}},
		{{Key: "$skip", Value: page.Skip()}},
		{{Key: "$limit", Value: int64(page.PageSize)}},
	}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline, projectPostView())
	return r.aggregateViews(ctx, pipeline)
}

// matchAuthorIDs resolves an author username pattern to user ids for
// the $in clause of the listing filter.
func (r *BlogRepository) matchAuthorIDs(ctx context.Context, pattern string) ([]primitive.ObjectID, error) {
	cur, err := r.users.Find(ctx, bson.M{"username": ciRegex(pattern)},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *BlogRepository) ListByAuthors(ctx context.Context, authorIDs []string, page repository.PageOpts) ([]entity.PostView, error) {
	oids := make([]primitive.ObjectID, 0, len(authorIDs))
	for _, id := range authorIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"author":     bson.M{"$in": oids},
			"isDisabled": false,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: page.Skip()}},
		{{Key: "$limit", Value: int64(page.PageSize)}},
	}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline, projectPostView())
	return r.aggregateViews(ctx, pipeline)
}

func (r *BlogRepository) ListNewestFirst(ctx context.Context, page repository.PageOpts) ([]entity.PostView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: page.Skip()}},
		{{Key: "$limit", Value: int64(page.PageSize)}},
	}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline, projectPostView())
	return r.aggregateViews(ctx, pipeline)
}

func (r *BlogRepository) aggregateViews(ctx context.Context, pipeline mongo.Pipeline) ([]entity.PostView, error) {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	views := []entity.PostView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// PushFeedback appends through a guarded update: the filter only
// matches when the user has no entry yet, so concurrent duplicates
// cannot both land.
func (r *BlogRepository) PushFeedback(ctx context.Context, postID string, fb entity.Feedback) error {
	oid, err := objectID(postID)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "feedback.user": bson.M{"$ne": fb.User}},
		bson.M{"$push": bson.M{"feedback": fb}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrDuplicate
	}
	return nil
}

func (r *BlogRepository) ListForAdmin(ctx context.Context, page repository.PageOpts) ([]entity.AdminPostView, error) {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$project", Value: bson.M{
			"title":         1,
			"author":        "$author.username",
			"created_at":    1,
			"averageRating": bson.M{"$avg": "$feedback.rating"},
			"isDisabled":    1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: page.Skip()}},
		bson.D{{Key: "$limit", Value: int64(page.PageSize)}},
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	views := []entity.AdminPostView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *BlogRepository) GetForAdmin(ctx context.Context, id string) (*entity.AdminPostView, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
	}
	pipeline = append(pipeline, lookupAuthor()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"title":         1,
		"author":        "$author.username",
		"created_at":    1,
		"feedback":      1,
		"isDisabled":    1,
		"averageRating": bson.M{"$avg": "$feedback.rating"},
	}}})

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	views := []entity.AdminPostView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, repository.ErrNotFound
	}
	return &views[0], nil
}

func (r *BlogRepository) SetDisabled(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"isDisabled": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
