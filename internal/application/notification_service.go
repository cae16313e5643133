package application

import (
	"context"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
)

// NotificationService serves the polled unread listing. There is no
// mark-as-read or delete operation on the current surface.
type NotificationService struct {
	Repo repo.NotificationRepository
}

func NewNotificationService(r repo.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: r}
}

func (s *NotificationService) ListUnread(ctx context.Context, userID string) ([]entity.NotificationView, error) {
	return s.Repo.ListUnread(ctx, userID)
}
