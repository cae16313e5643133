package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
)

// BlogService owns post authoring, the filtered/sorted/paginated
// listings, and the feedback side effects.
type BlogService struct {
	Posts         repo.BlogRepository
	Notifications repo.NotificationRepository
	Logger        *logrus.Logger
}

func NewBlogService(posts repo.BlogRepository, notifications repo.NotificationRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Posts: posts, Notifications: notifications, Logger: logger}
}

func (s *BlogService) Create(ctx context.Context, authorID, title, content, category string) (*entity.BlogPost, error) {
	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, ErrNotFound
	}
	post := &entity.BlogPost{
		Title:     title,
		Content:   content,
		Category:  category,
		Author:    author,
		Feedback:  []entity.Feedback{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Get(ctx context.Context, postID string) (*entity.PostView, error) {
	view, err := s.Posts.GetView(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return view, err
}

// Update replaces the three mutable content fields. Only the author may
// update a post.
func (s *BlogService) Update(ctx context.Context, postID, requesterID, title, content, category string) error {
	if err := s.requireAuthor(ctx, postID, requesterID); err != nil {
		return err
	}
	err := s.Posts.Update(ctx, postID, title, content, category)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) Delete(ctx context.Context, postID, requesterID string) error {
	if err := s.requireAuthor(ctx, postID, requesterID); err != nil {
		return err
	}
	err := s.Posts.Delete(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BlogService) requireAuthor(ctx context.Context, postID, requesterID string) error {
	post, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.Author.Hex() != requesterID {
		return ErrForbidden
	}
	return nil
}

func (s *BlogService) List(ctx context.Context, filter repo.PostFilter, page repo.PageOpts) ([]entity.PostView, error) {
	return s.Posts.List(ctx, filter, page)
}

// ListAllAuthors lists every author's posts newest first; the route
// name suggests a per-author listing but the behavior deliberately
// matches the legacy surface.
func (s *BlogService) ListAllAuthors(ctx context.Context, page repo.PageOpts) ([]entity.PostView, error) {
	return s.Posts.ListNewestFirst(ctx, page)
}

// AddFeedback appends a rating+comment entry and notifies the post
// author. The notification write is sequential after the feedback write
// and advisory: a failure is logged and the request still succeeds.
func (s *BlogService) AddFeedback(ctx context.Context, postID, userID string, rating float64, comment string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	post, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = s.Posts.PushFeedback(ctx, postID, entity.Feedback{
		User:      uid,
		Rating:    rating,
		Comment:   comment,
		CreatedOn: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrDuplicateFeedback
		}
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	postRef := post.ID
	notification := &entity.Notification{
		User:      post.Author,
		Type:      entity.NotificationComment,
		PostID:    &postRef,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Notifications.Create(ctx, notification); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"post_id": postID,
			"user_id": userID,
		}).Warn("comment notification write failed")
	}
	return nil
}

func (s *BlogService) ListForAdmin(ctx context.Context, page repo.PageOpts) ([]entity.AdminPostView, error) {
	return s.Posts.ListForAdmin(ctx, page)
}

func (s *BlogService) GetForAdmin(ctx context.Context, postID string) (*entity.AdminPostView, error) {
	view, err := s.Posts.GetForAdmin(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return view, err
}

// Disable hides a post from every non-admin listing. There is no
// reversal operation.
func (s *BlogService) Disable(ctx context.Context, postID string) error {
	err := s.Posts.SetDisabled(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
