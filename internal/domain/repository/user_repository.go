package repository

import (
	"context"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
)

// UserRepository defines user persistence. Uniqueness of username and
// email, and the at-most-one-admin rule, are backed by store indexes:
// a violating write returns ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (string, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	AdminExists(ctx context.Context) (bool, error)
	UpdateProfile(ctx context.Context, id, username, email string) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	ListByRole(ctx context.Context, role string) ([]entity.User, error)
}
