package repository

import (
	"context"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
)

// NotificationRepository persists advisory notification events and
// serves the unread listing with the referenced post title joined in.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListUnread(ctx context.Context, userID string) ([]entity.NotificationView, error)
}
