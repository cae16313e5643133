package application

import "errors"

// Failure taxonomy surfaced to handlers. Each request yields exactly
// one of these (or a generic internal error); handlers translate them
// into a status code and an {error} body.
var (
	ErrConflict           = errors.New("user already exists")
	ErrAdminExists        = errors.New("admin already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("user is disabled")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrCannotFollowAdmin  = errors.New("cannot follow admin")
	ErrDuplicateFeedback  = errors.New("feedback already submitted for this post")
)
