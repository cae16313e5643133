package repository

import "context"

// FollowRepository defines the directed follow graph. The ordered
// (follower, following) pair is unique at the store; Create returns
// ErrDuplicate when the edge already exists.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Create(ctx context.Context, followerID, followingID string) error
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
}
