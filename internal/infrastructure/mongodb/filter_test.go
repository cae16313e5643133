package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

func TestBuildPostFilterEmpty(t *testing.T) {
	query := buildPostFilter(repository.PostFilter{}, nil)
	assert.Equal(t, bson.M{"isDisabled": false}, query)
}

func TestBuildPostFilterORsPredicates(t *testing.T) {
	authorID := primitive.NewObjectID()
	query := buildPostFilter(repository.PostFilter{
		Author:   "alice",
		Title:    "go",
		Category: "tech",
	}, []primitive.ObjectID{authorID})

	assert.Equal(t, false, query["isDisabled"])
	or, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"author": bson.M{"$in": []primitive.ObjectID{authorID}}}, or[0])
	assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: "go", Options: "i"}}, or[1])
	assert.Equal(t, bson.M{"category": primitive.Regex{Pattern: "tech", Options: "i"}}, or[2])
}

func TestBuildPostFilterAuthorMatchedNoUsers(t *testing.T) {
	query := buildPostFilter(repository.PostFilter{Author: "nobody"}, nil)

	_, hasOr := query["$or"]
	assert.False(t, hasOr)
	assert.Equal(t, bson.M{"$exists": false}, query["_id"], "filter must match nothing, not everything")
}

func TestBuildPostFilterAuthorNoUsersButTitleSet(t *testing.T) {
	query := buildPostFilter(repository.PostFilter{Author: "nobody", Title: "go"}, nil)

	or, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 1, "the dead author clause is dropped, the title clause survives")
	assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: "go", Options: "i"}}, or[0])
}

func TestCIRegexQuotesMetaCharacters(t *testing.T) {
	r := ciRegex("c++ (beta)")
	assert.Equal(t, `c\+\+ \(beta\)`, r.Pattern)
	assert.Equal(t, "i", r.Options)
}

func TestSortDoc(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "created_at", Value: 1}},
		sortDoc(repository.PageOpts{}))

	assert.Equal(t,
		bson.D{{Key: "title", Value: -1}},
		sortDoc(repository.PageOpts{SortBy: "title", SortOrder: "desc"}))
}

func TestPageOptsSkip(t *testing.T) {
	assert.Equal(t, int64(0), repository.PageOpts{Page: 1, PageSize: 10}.Skip())
	assert.Equal(t, int64(20), repository.PageOpts{Page: 3, PageSize: 10}.Skip())
}
