package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

// buildPostFilter turns the typed filter into a query document. Each
// supplied pattern becomes a case-insensitive regex clause; the clauses
// are OR-ed together and intersected with isDisabled=false. With no
// predicates the document degenerates to just the disabled check, so an
// unfiltered listing matches everything rather than nothing.
//
// authorIDs carries the pre-resolved user IDs matching the author
// pattern; it is only consulted when filter.Author is set.
func buildPostFilter(filter repository.PostFilter, authorIDs []primitive.ObjectID) bson.M {
	query := bson.M{"isDisabled": false}
	if filter.Empty() {
		return query
	}

	or := bson.A{}
	if filter.Author != "" && len(authorIDs) > 0 {
		or = append(or, bson.M{"author": bson.M{"$in": authorIDs}})
	}
	if filter.Title != "" {
		or = append(or, bson.M{"title": ciRegex(filter.Title)})
	}
	if filter.Category != "" {
		or = append(or, bson.M{"category": ciRegex(filter.Category)})
	}

	// An author pattern that matched no users contributes no clause; if
	// that leaves the OR list empty the filter cannot be satisfied.
	if len(or) == 0 {
		query["_id"] = bson.M{"$exists": false}
		return query
	}
	query["$or"] = or
	return query
}

// ciRegex builds a case-insensitive substring match, quoting the input
// so user-supplied patterns cannot inject regex syntax.
func ciRegex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}
}

// sortDoc maps the caller-specified sort onto a sort document, default
// created_at ascending.
func sortDoc(page repository.PageOpts) bson.D {
	field := page.SortBy
	if field == "" {
		field = "created_at"
	}
	order := 1
	if page.Descending() {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}
