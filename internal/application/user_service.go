package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/pkg/helpers"
	"github.com/nandakusuma/blogsocial/pkg/mailer"
)

// EmailPublisher enqueues an email job for the worker. Nil-safe at the
// call sites: publishing is advisory and never fails a request.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService covers registration, authentication and profile
// operations plus the admin user moderation surface.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Pub    EmailPublisher
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Pub: pub, Logger: logger}
}

// Register creates a new account. Only one admin account may ever
// exist; the pre-check gives a friendly error and the partial unique
// index on role closes the race.
func (s *UserService) Register(ctx context.Context, username, email, password, role string) (string, error) {
	if !entity.ValidRole(role) {
		return "", ErrInvalidRole
	}
	exists, err := s.Repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrConflict
	}
	if role == entity.RoleAdmin {
		adminExists, err := s.Repo.AdminExists(ctx)
		if err != nil {
			return "", err
		}
		if adminExists {
			return "", ErrAdminExists
		}
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", err
	}
	id, err := s.Repo.Create(ctx, &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrConflict
		}
		return "", err
	}

	s.sendWelcomeEmail(ctx, username, email)
	return id, nil
}

// sendWelcomeEmail enqueues the welcome mail. Best-effort: a publish
// failure is logged and swallowed, registration already succeeded.
func (s *UserService) sendWelcomeEmail(ctx context.Context, username, email string) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:      email,
		Subject: "Welcome to the platform",
		Text:    fmt.Sprintf("Hi %s, your account is ready. Happy blogging!", username),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("welcome email enqueue failed")
	}
}

// Login validates the credentials and issues a signed token carrying
// the user id and role. Disabled accounts cannot log in even with
// correct credentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}
	if u.IsDisabled {
		return "", ErrAccountDisabled
	}
	token, _, err := s.JWT.Generate(u.ID.Hex(), u.Role)
	return token, err
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, username, email string) error {
	err := s.Repo.UpdateProfile(ctx, userID, username, email)
	if errors.Is(err, repo.ErrDuplicate) {
		return ErrConflict
	}
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ListUsers returns every non-admin account, for the admin surface.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.Repo.ListByRole(ctx, entity.RoleUser)
}

// BlockUser disables an account; subsequent logins fail until an admin
// re-enables it.
func (s *UserService) BlockUser(ctx context.Context, userID string) error {
	err := s.Repo.SetDisabled(ctx, userID, true)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
