package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandakusuma/blogsocial/internal/application"
	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	handlers "github.com/nandakusuma/blogsocial/internal/interface/http"
	"github.com/nandakusuma/blogsocial/internal/router/modules"
	"github.com/nandakusuma/blogsocial/internal/testutil"
	"github.com/nandakusuma/blogsocial/pkg/helpers"
	"github.com/nandakusuma/blogsocial/pkg/validation"
)

type api struct {
	store  *testutil.Store
	jwt    *helpers.JWTManager
	engine *gin.Engine
}

// newAPI builds the full route surface over the in-memory store, using
// the same module wiring as the server bootstrap.
func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := testutil.NewStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userSvc := application.NewUserService(store.Users(), jwt, nil, logger)
	blogSvc := application.NewBlogService(store.Posts(), store.Notifications(), logger)
	followSvc := application.NewFollowService(store.Follows(), store.Users(), store.Posts(), store.Notifications(), logger)
	notificationSvc := application.NewNotificationService(store.Notifications())

	userHandler := handlers.NewUserHandler(userSvc, logger)
	socialHandler := handlers.NewSocialHandler(followSvc, notificationSvc, logger)
	blogHandler := handlers.NewBlogHandler(blogSvc, logger)
	adminHandler := handlers.NewAdminHandler(userSvc, blogSvc, logger)

	engine := gin.New()
	root := engine.Group("/")
	modules.NewUserModule(userHandler, socialHandler, store.Users(), jwt).Register(root)
	modules.NewBlogModule(blogHandler, store.Users(), jwt).Register(root)
	modules.NewAdminModule(adminHandler, store.Users(), jwt).Register(root)

	return &api{store: store, jwt: jwt, engine: engine}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedUser inserts an account directly and returns its id and a token.
func (a *api) seedUser(t *testing.T, username, role string) (string, string) {
	t.Helper()
	hash, err := helpers.HashPassword("password1")
	require.NoError(t, err)
	id := a.store.AddUser(entity.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	})
	token, _, err := a.jwt.Generate(id, role)
	require.NoError(t, err)
	return id, token
}

func (a *api) createPost(t *testing.T, token, title string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/blog/create", token, gin.H{
		"title":    title,
		"content":  "some content",
		"category": "tech",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	post, ok := body["blogPost"].(map[string]any)
	require.True(t, ok)
	id, ok := post["id"].(string)
	require.True(t, ok)
	return id
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password1",
		"role":     "user",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["userId"])

	w = a.do(t, http.MethodPost, "/user/login", "", gin.H{
		"username": "alice",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = a.do(t, http.MethodGet, "/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "alice", profile["username"])
	assert.NotContains(t, w.Body.String(), "password", "credential hash must never leave the API")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	a := newAPI(t)

	w := a.do(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
		"role":     "user",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")
}

func TestRegisterSecondAdmin(t *testing.T) {
	a := newAPI(t)
	a.seedUser(t, "root", entity.RoleAdmin)

	w := a.do(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "root2",
		"email":    "root2@example.com",
		"password": "password1",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "admin already exists")
}

func TestRateCommentFlow(t *testing.T) {
	a := newAPI(t)
	_, authorToken := a.seedUser(t, "author", entity.RoleUser)
	_, raterToken := a.seedUser(t, "rater", entity.RoleUser)
	postID := a.createPost(t, authorToken, "First Post")

	w := a.do(t, http.MethodPut, "/blog/"+postID+"/rate-comment", raterToken, gin.H{
		"rating":  5,
		"comment": "great read",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The author polls notifications and sees the comment event with
	// the post reference resolved.
	w = a.do(t, http.MethodGet, "/user/notifications", authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var views []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "comment", views[0]["type"])
	assert.Equal(t, postID, views[0]["postId"])
	assert.Equal(t, "First Post", views[0]["postTitle"])

	// A second rating by the same user is rejected.
	w = a.do(t, http.MethodPut, "/blog/"+postID+"/rate-comment", raterToken, gin.H{
		"rating":  1,
		"comment": "changed my mind",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "feedback already submitted")

	w = a.do(t, http.MethodGet, "/blog/"+postID, raterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeBody(t, w)
	assert.Equal(t, 5.0, view["averageRating"])
	fb, _ := view["feedback"].([]any)
	assert.Len(t, fb, 1)
}

func TestRateCommentRejectsOutOfRangeRating(t *testing.T) {
	a := newAPI(t)
	_, authorToken := a.seedUser(t, "author", entity.RoleUser)
	_, raterToken := a.seedUser(t, "rater", entity.RoleUser)
	postID := a.createPost(t, authorToken, "First Post")

	w := a.do(t, http.MethodPut, "/blog/"+postID+"/rate-comment", raterToken, gin.H{
		"rating": 7,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowFlow(t *testing.T) {
	a := newAPI(t)
	aliceID, aliceToken := a.seedUser(t, "alice", entity.RoleUser)
	bobID, bobToken := a.seedUser(t, "bob", entity.RoleUser)

	w := a.do(t, http.MethodPost, "/user/follow/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/user/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var views []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "follow", views[0]["type"])
	assert.Equal(t, aliceID, views[0]["followerId"])
	assert.NotContains(t, views[0], "postId")

	w = a.do(t, http.MethodPost, "/user/follow/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already following")

	w = a.do(t, http.MethodPost, "/user/follow/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot follow yourself")
}

func TestFeedFlow(t *testing.T) {
	a := newAPI(t)
	_, aliceToken := a.seedUser(t, "alice", entity.RoleUser)
	bobID, bobToken := a.seedUser(t, "bob", entity.RoleUser)

	w := a.do(t, http.MethodGet, "/user/feed", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no blog posts found")

	a.createPost(t, bobToken, "Bob Writes")
	w = a.do(t, http.MethodPost, "/user/follow/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodGet, "/user/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var feed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "Bob Writes", feed[0]["title"])
	assert.Equal(t, "bob", feed[0]["author"])
}

func TestNotificationsEmpty(t *testing.T) {
	a := newAPI(t)
	_, token := a.seedUser(t, "alice", entity.RoleUser)

	w := a.do(t, http.MethodGet, "/user/notifications", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no notifications found")
}

func TestUpdateForeignPostForbidden(t *testing.T) {
	a := newAPI(t)
	_, authorToken := a.seedUser(t, "author", entity.RoleUser)
	_, otherToken := a.seedUser(t, "other", entity.RoleUser)
	postID := a.createPost(t, authorToken, "Mine")

	w := a.do(t, http.MethodPut, "/blog/"+postID, otherToken, gin.H{
		"title":   "Hijacked",
		"content": "x",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodDelete, "/blog/"+postID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDisabledPostHiddenFromUsersVisibleToAdmin(t *testing.T) {
	a := newAPI(t)
	_, adminToken := a.seedUser(t, "root", entity.RoleAdmin)
	_, authorToken := a.seedUser(t, "author", entity.RoleUser)
	keepID := a.createPost(t, authorToken, "Kept")
	dropID := a.createPost(t, authorToken, "Moderated")

	w := a.do(t, http.MethodPut, "/admin/blog-posts/disable/"+dropID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/blog/", authorToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, keepID, listed[0]["id"])

	w = a.do(t, http.MethodGet, "/admin/blog-posts", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var adminListed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminListed))
	require.Len(t, adminListed, 2)

	w = a.do(t, http.MethodGet, "/admin/blog-posts/"+dropID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["isDisabled"])
}

func TestBlockedUserLosesAccess(t *testing.T) {
	a := newAPI(t)
	_, adminToken := a.seedUser(t, "root", entity.RoleAdmin)
	aliceID, aliceToken := a.seedUser(t, "alice", entity.RoleUser)

	w := a.do(t, http.MethodPut, "/admin/users/block/"+aliceID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The still-valid token no longer passes the gate.
	w = a.do(t, http.MethodGet, "/user/profile", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// And fresh logins are refused.
	w = a.do(t, http.MethodPost, "/user/login", "", gin.H{
		"username": "alice",
		"password": "password1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user is disabled")
}

func TestAdminRoutesRejectUserRole(t *testing.T) {
	a := newAPI(t)
	_, userToken := a.seedUser(t, "alice", entity.RoleUser)

	w := a.do(t, http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminListUsersOmitsAdminAndPasswords(t *testing.T) {
	a := newAPI(t)
	_, adminToken := a.seedUser(t, "root", entity.RoleAdmin)
	a.seedUser(t, "alice", entity.RoleUser)

	w := a.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/user/profile"},
		{http.MethodGet, "/blog/"},
		{http.MethodGet, "/user/feed"},
		{http.MethodGet, "/admin/users"},
	} {
		w := a.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}
