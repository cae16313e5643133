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

// FollowService owns the follow graph and the feed it scopes.
type FollowService struct {
	Follows       repo.FollowRepository
	Users         repo.UserRepository
	Posts         repo.BlogRepository
	Notifications repo.NotificationRepository
	Logger        *logrus.Logger
}

func NewFollowService(follows repo.FollowRepository, users repo.UserRepository, posts repo.BlogRepository, notifications repo.NotificationRepository, logger *logrus.Logger) *FollowService {
	return &FollowService{
		Follows:       follows,
		Users:         users,
		Posts:         posts,
		Notifications: notifications,
		Logger:        logger,
	}
}

// Follow creates a follower->following edge and notifies the target.
// The notification write runs sequentially after the edge write and is
// advisory: losing it does not fail the request. The compound unique
// index on the edge closes the duplicate race behind the pre-check.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	exists, err := s.Follows.Exists(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}
	target, err := s.Users.GetByID(ctx, followingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if target.Role == entity.RoleAdmin {
		return ErrCannotFollowAdmin
	}

	if err := s.Follows.Create(ctx, followerID, followingID); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return err
	}

	follower, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return nil
	}
	notification := &entity.Notification{
		User:       target.ID,
		Type:       entity.NotificationFollow,
		FollowerID: &follower,
		IsRead:     false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Notifications.Create(ctx, notification); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"follower_id":  followerID,
			"following_id": followingID,
		}).Warn("follow notification write failed")
	}
	return nil
}

// Feed returns posts authored by the accounts the user follows, newest
// first, excluding disabled posts.
func (s *FollowService) Feed(ctx context.Context, userID string, page repo.PageOpts) ([]entity.PostView, error) {
	following, err := s.Follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Posts.ListByAuthors(ctx, following, page)
}
