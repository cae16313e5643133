package repository

import (
	"context"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
)

// PostFilter is the typed filter for post listings. Non-empty patterns
// are matched case-insensitively and combined with OR; the whole filter
// is then intersected with isDisabled=false. Zero predicates means "no
// filtering", never "match nothing".
type PostFilter struct {
	Author   string
	Title    string
	Category string
}

// Empty reports whether no predicate was supplied.
func (f PostFilter) Empty() bool {
	return f.Author == "" && f.Title == "" && f.Category == ""
}

// PageOpts carries caller-specified sorting and 1-indexed offset
// pagination for listing queries.
type PageOpts struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Skip returns the offset implied by the page number.
func (p PageOpts) Skip() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

// Descending reports whether the caller asked for a descending sort.
func (p PageOpts) Descending() bool {
	return p.SortOrder == "desc"
}

// BlogRepository defines post persistence and the aggregation reads
// that join author names and derive rating averages.
type BlogRepository interface {
	Create(ctx context.Context, p *entity.BlogPost) (string, error)
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	GetView(ctx context.Context, id string) (*entity.PostView, error)
	Update(ctx context.Context, id, title, content, category string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PostFilter, page PageOpts) ([]entity.PostView, error)
	ListByAuthors(ctx context.Context, authorIDs []string, page PageOpts) ([]entity.PostView, error)
	ListNewestFirst(ctx context.Context, page PageOpts) ([]entity.PostView, error)
	// PushFeedback appends a feedback entry unless the user already left
	// one; returns ErrDuplicate in that case, ErrNotFound when the post
	// does not resolve.
	PushFeedback(ctx context.Context, postID string, fb entity.Feedback) error
	ListForAdmin(ctx context.Context, page PageOpts) ([]entity.AdminPostView, error)
	GetForAdmin(ctx context.Context, id string) (*entity.AdminPostView, error)
	SetDisabled(ctx context.Context, id string) error
}
