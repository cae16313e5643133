package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/internal/testutil"
)

func newBlogService(store *testutil.Store) *BlogService {
	return NewBlogService(store.Posts(), store.Notifications(), testLogger())
}

func seedAuthorAndPost(t *testing.T, store *testutil.Store) (authorID, postID string) {
	t.Helper()
	authorID = store.AddUser(entity.User{Username: "author", Email: "a@example.com", Role: entity.RoleUser})
	svc := newBlogService(store)
	post, err := svc.Create(context.Background(), authorID, "First Post", "hello world", "tech")
	require.NoError(t, err)
	return authorID, post.ID.Hex()
}

func TestCreateAndGetPost(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)

	view, err := svc.Get(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "First Post", view.Title)
	assert.Equal(t, "author", view.Author)
	assert.Nil(t, view.AverageRating, "no feedback means no average")
	assert.Empty(t, view.Feedback)
}

func TestAverageRating(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()

	rater1 := store.AddUser(entity.User{Username: "rater1", Email: "r1@example.com", Role: entity.RoleUser})
	rater2 := store.AddUser(entity.User{Username: "rater2", Email: "r2@example.com", Role: entity.RoleUser})

	require.NoError(t, svc.AddFeedback(ctx, postID, rater1, 3, "ok"))
	require.NoError(t, svc.AddFeedback(ctx, postID, rater2, 5, "great"))

	view, err := svc.Get(ctx, postID)
	require.NoError(t, err)
	require.NotNil(t, view.AverageRating)
	assert.InDelta(t, 4.0, *view.AverageRating, 1e-9)
	assert.Len(t, view.Feedback, 2)
}

func TestDuplicateFeedbackRejected(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()

	rater := store.AddUser(entity.User{Username: "rater", Email: "r@example.com", Role: entity.RoleUser})

	require.NoError(t, svc.AddFeedback(ctx, postID, rater, 4, "nice"))
	err := svc.AddFeedback(ctx, postID, rater, 1, "changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateFeedback)

	view, err := svc.Get(ctx, postID)
	require.NoError(t, err)
	require.Len(t, view.Feedback, 1, "second entry must not be stored")
	assert.Equal(t, 4.0, view.Feedback[0].Rating)
}

func TestFeedbackNotifiesAuthor(t *testing.T) {
	store := testutil.NewStore()
	authorID, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()

	rater := store.AddUser(entity.User{Username: "rater", Email: "r@example.com", Role: entity.RoleUser})
	require.NoError(t, svc.AddFeedback(ctx, postID, rater, 5, "brilliant"))

	views, err := store.Notifications().ListUnread(ctx, authorID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, entity.NotificationComment, views[0].Type)
	require.NotNil(t, views[0].PostID)
	assert.Equal(t, postID, views[0].PostID.Hex())
	assert.Equal(t, "First Post", views[0].PostTitle)
}

func TestFeedbackSucceedsWhenNotificationWriteFails(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	store.FailNotifications = true
	svc := newBlogService(store)

	rater := store.AddUser(entity.User{Username: "rater", Email: "r@example.com", Role: entity.RoleUser})
	err := svc.AddFeedback(context.Background(), postID, rater, 5, "brilliant")
	assert.NoError(t, err, "notification loss must not fail the request")
}

func TestFeedbackOnMissingPost(t *testing.T) {
	store := testutil.NewStore()
	svc := newBlogService(store)
	rater := store.AddUser(entity.User{Username: "rater", Email: "r@example.com", Role: entity.RoleUser})

	err := svc.AddFeedback(context.Background(), "64b000000000000000000000", rater, 3, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRequiresAuthor(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()

	other := store.AddUser(entity.User{Username: "other", Email: "o@example.com", Role: entity.RoleUser})

	err := svc.Update(ctx, postID, other, "Hijacked", "x", "y")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, postID, other)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorCanUpdateAndDelete(t *testing.T) {
	store := testutil.NewStore()
	authorID, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, postID, authorID, "Edited", "new body", "life"))
	view, err := svc.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", view.Title)

	require.NoError(t, svc.Delete(ctx, postID, authorID))
	_, err = svc.Get(ctx, postID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisableHidesPostFromListing(t *testing.T) {
	store := testutil.NewStore()
	_, postID := seedAuthorAndPost(t, store)
	svc := newBlogService(store)
	ctx := context.Background()
	page := repo.PageOpts{Page: 1, PageSize: 10}

	views, err := svc.List(ctx, repo.PostFilter{}, page)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, svc.Disable(ctx, postID))

	views, err = svc.List(ctx, repo.PostFilter{}, page)
	require.NoError(t, err)
	assert.Empty(t, views)

	adminViews, err := svc.ListForAdmin(ctx, page)
	require.NoError(t, err)
	require.Len(t, adminViews, 1)
	assert.True(t, adminViews[0].IsDisabled)
}

func TestListFilterMatchesAnyPredicate(t *testing.T) {
	store := testutil.NewStore()
	authorID := store.AddUser(entity.User{Username: "carol", Email: "c@example.com", Role: entity.RoleUser})
	svc := newBlogService(store)
	ctx := context.Background()
	page := repo.PageOpts{Page: 1, PageSize: 10}

	_, err := svc.Create(ctx, authorID, "Go Patterns", "body", "tech")
	require.NoError(t, err)
	_, err = svc.Create(ctx, authorID, "Garden Notes", "body", "hobby")
	require.NoError(t, err)

	views, err := svc.List(ctx, repo.PostFilter{Title: "go"}, page)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Go Patterns", views[0].Title)

	// OR semantics: the title matches nothing but the author does.
	views, err = svc.List(ctx, repo.PostFilter{Author: "carol", Title: "zzz"}, page)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.List(ctx, repo.PostFilter{Author: "nobody"}, page)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListAllAuthorsNewestFirst(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddUser(entity.User{Username: "a", Email: "a@x.com", Role: entity.RoleUser})
	b := store.AddUser(entity.User{Username: "b", Email: "b@x.com", Role: entity.RoleUser})
	now := time.Now().UTC()
	store.AddPost(entity.BlogPost{Title: "oldest", Author: mustOID(t, a), CreatedAt: now.Add(-2 * time.Hour)})
	store.AddPost(entity.BlogPost{Title: "newest", Author: mustOID(t, b), CreatedAt: now})
	store.AddPost(entity.BlogPost{Title: "middle", Author: mustOID(t, a), CreatedAt: now.Add(-time.Hour)})

	svc := newBlogService(store)
	views, err := svc.ListAllAuthors(context.Background(), repo.PageOpts{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "newest", views[0].Title)
	assert.Equal(t, "middle", views[1].Title)
	assert.Equal(t, "oldest", views[2].Title)
}

func TestListPagination(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddUser(entity.User{Username: "a", Email: "a@x.com", Role: entity.RoleUser})
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		store.AddPost(entity.BlogPost{
			Title:     string(rune('a' + i)),
			Author:    mustOID(t, a),
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}

	svc := newBlogService(store)
	ctx := context.Background()

	views, err := svc.List(ctx, repo.PostFilter{}, repo.PageOpts{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "c", views[0].Title)
	assert.Equal(t, "d", views[1].Title)

	views, err = svc.List(ctx, repo.PostFilter{}, repo.PageOpts{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, views)
}
