// Package testutil provides in-memory repository implementations used
// by service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
)

// Store bundles the four in-memory repositories over one shared state
// so cross-store joins (author names, post titles) work like the
// aggregation pipelines do.
type Store struct {
	mu            sync.Mutex
	users         map[string]*entity.User
	posts         map[string]*entity.BlogPost
	edges         map[string]bool
	notifications []entity.Notification

	// FailNotifications makes notification writes fail, for testing the
	// best-effort side-effect contract.
	FailNotifications bool
}

func NewStore() *Store {
	return &Store{
		users: map[string]*entity.User{},
		posts: map[string]*entity.BlogPost{},
		edges: map[string]bool{},
	}
}

func (s *Store) Users() repository.UserRepository                 { return (*userRepo)(s) }
func (s *Store) Posts() repository.BlogRepository                 { return (*blogRepo)(s) }
func (s *Store) Follows() repository.FollowRepository             { return (*followRepo)(s) }
func (s *Store) Notifications() repository.NotificationRepository { return (*notificationRepo)(s) }

// AddUser inserts a user directly and returns its id.
func (s *Store) AddUser(u entity.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID.Hex()] = &u
	return u.ID.Hex()
}

// AddPost inserts a post directly and returns its id.
func (s *Store) AddPost(p entity.BlogPost) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Feedback == nil {
		p.Feedback = []entity.Feedback{}
	}
	s.posts[p.ID.Hex()] = &p
	return p.ID.Hex()
}

// UnreadCount reports stored unread notifications for a user.
func (s *Store) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, nt := range s.notifications {
		if nt.User.Hex() == userID && !nt.IsRead {
			n++
		}
	}
	return n
}

// --- users ---

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *entity.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return "", repository.ErrDuplicate
		}
		if u.Role == entity.RoleAdmin && existing.Role == entity.RoleAdmin {
			return "", repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return u.ID.Hex(), nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) AdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == entity.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) UpdateProfile(_ context.Context, id, username, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if other.Username == username || other.Email == email {
			return repository.ErrDuplicate
		}
	}
	u.Username = username
	u.Email = email
	return nil
}

func (r *userRepo) SetDisabled(_ context.Context, id string, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsDisabled = disabled
	return nil
}

func (r *userRepo) ListByRole(_ context.Context, role string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// --- follow edges ---

type followRepo Store

func edgeKey(followerID, followingID string) string {
	return followerID + ">" + followingID
}

func (r *followRepo) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.edges[edgeKey(followerID, followingID)], nil
}

func (r *followRepo) Create(_ context.Context, followerID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := edgeKey(followerID, followingID)
	if r.edges[key] {
		return repository.ErrDuplicate
	}
	r.edges[key] = true
	return nil
}

func (r *followRepo) ListFollowing(_ context.Context, followerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for key := range r.edges {
		parts := strings.SplitN(key, ">", 2)
		if parts[0] == followerID {
			out = append(out, parts[1])
		}
	}
	return out, nil
}

// --- posts ---

type blogRepo Store

func (r *blogRepo) Create(_ context.Context, p *entity.BlogPost) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.Feedback == nil {
		p.Feedback = []entity.Feedback{}
	}
	cp := *p
	r.posts[p.ID.Hex()] = &cp
	return p.ID.Hex(), nil
}

func (r *blogRepo) GetByID(_ context.Context, id string) (*entity.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *blogRepo) username(authorID primitive.ObjectID) string {
	if u, ok := r.users[authorID.Hex()]; ok {
		return u.Username
	}
	return ""
}

func (r *blogRepo) view(p *entity.BlogPost) entity.PostView {
	v := entity.PostView{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		Author:     r.username(p.Author),
		Feedback:   append([]entity.Feedback{}, p.Feedback...),
		CreatedAt:  p.CreatedAt,
		IsDisabled: p.IsDisabled,
	}
	if len(p.Feedback) > 0 {
		sum := 0.0
		for _, fb := range p.Feedback {
			sum += fb.Rating
		}
		avg := sum / float64(len(p.Feedback))
		v.AverageRating = &avg
	}
	return v
}

func (r *blogRepo) GetView(_ context.Context, id string) (*entity.PostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(p)
	return &v, nil
}

func (r *blogRepo) Update(_ context.Context, id, title, content, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.Category = category
	return nil
}

func (r *blogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *blogRepo) matches(p *entity.BlogPost, filter repository.PostFilter) bool {
	if p.IsDisabled {
		return false
	}
	if filter.Empty() {
		return true
	}
	if filter.Author != "" && containsFold(r.username(p.Author), filter.Author) {
		return true
	}
	if filter.Title != "" && containsFold(p.Title, filter.Title) {
		return true
	}
	if filter.Category != "" && containsFold(p.Category, filter.Category) {
		return true
	}
	return false
}

func sortViews(views []entity.PostView, page repository.PageOpts) {
	field := page.SortBy
	if field == "" {
		field = "created_at"
	}
	desc := page.Descending()
	sort.SliceStable(views, func(i, j int) bool {
		var less bool
		switch field {
		case "title":
			less = views[i].Title < views[j].Title
		default:
			less = views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func paginate(views []entity.PostView, page repository.PageOpts) []entity.PostView {
	start := (page.Page - 1) * page.PageSize
	if start >= len(views) {
		return []entity.PostView{}
	}
	end := start + page.PageSize
	if end > len(views) {
		end = len(views)
	}
	return views[start:end]
}

func (r *blogRepo) List(_ context.Context, filter repository.PostFilter, page repository.PageOpts) ([]entity.PostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := []entity.PostView{}
	for _, p := range r.posts {
		if r.matches(p, filter) {
			views = append(views, r.view(p))
		}
	}
	sortViews(views, page)
	return paginate(views, page), nil
}

func (r *blogRepo) ListByAuthors(_ context.Context, authorIDs []string, page repository.PageOpts) ([]entity.PostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range authorIDs {
		want[id] = true
	}
	views := []entity.PostView{}
	for _, p := range r.posts {
		if !p.IsDisabled && want[p.Author.Hex()] {
			views = append(views, r.view(p))
		}
	}
	sortViews(views, repository.PageOpts{SortOrder: "desc"})
	return paginate(views, page), nil
}

func (r *blogRepo) ListNewestFirst(_ context.Context, page repository.PageOpts) ([]entity.PostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := []entity.PostView{}
	for _, p := range r.posts {
		views = append(views, r.view(p))
	}
	sortViews(views, repository.PageOpts{SortOrder: "desc"})
	return paginate(views, page), nil
}

func (r *blogRepo) PushFeedback(_ context.Context, postID string, fb entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range p.Feedback {
		if existing.User == fb.User {
			return repository.ErrDuplicate
		}
	}
	p.Feedback = append(p.Feedback, fb)
	return nil
}

func (r *blogRepo) adminView(p *entity.BlogPost, withFeedback bool) entity.AdminPostView {
	v := entity.AdminPostView{
		ID:         p.ID,
		Title:      p.Title,
		Author:     r.username(p.Author),
		CreatedAt:  p.CreatedAt,
		IsDisabled: p.IsDisabled,
	}
	if len(p.Feedback) > 0 {
		sum := 0.0
		for _, fb := range p.Feedback {
			sum += fb.Rating
		}
		avg := sum / float64(len(p.Feedback))
		v.AverageRating = &avg
	}
	if withFeedback {
		v.Feedback = append([]entity.Feedback{}, p.Feedback...)
	}
	return v
}

func (r *blogRepo) ListForAdmin(_ context.Context, page repository.PageOpts) ([]entity.AdminPostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := []*entity.BlogPost{}
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	views := []entity.AdminPostView{}
	for _, p := range posts {
		views = append(views, r.adminView(p, false))
	}
	start := (page.Page - 1) * page.PageSize
	if start >= len(views) {
		return []entity.AdminPostView{}, nil
	}
	end := start + page.PageSize
	if end > len(views) {
		end = len(views)
	}
	return views[start:end], nil
}

func (r *blogRepo) GetForAdmin(_ context.Context, id string) (*entity.AdminPostView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.adminView(p, true)
	return &v, nil
}

func (r *blogRepo) SetDisabled(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsDisabled = true
	return nil
}

// --- notifications ---

type notificationRepo Store

var errNotificationStore = errors.New("notification store unavailable")

func (r *notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailNotifications {
		return errNotificationStore
	}
	n.ID = primitive.NewObjectID()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *notificationRepo) ListUnread(_ context.Context, userID string) ([]entity.NotificationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := []entity.NotificationView{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.User.Hex() != userID || n.IsRead {
			continue
		}
		v := entity.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		switch n.Type {
		case entity.NotificationComment:
			v.PostID = n.PostID
			if n.PostID != nil {
				if p, ok := r.posts[n.PostID.Hex()]; ok {
					v.PostTitle = p.Title
				}
			}
		case entity.NotificationFollow:
			v.FollowerID = n.FollowerID
		}
		views = append(views, v)
	}
	return views, nil
}
