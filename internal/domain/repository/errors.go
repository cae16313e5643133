package repository

import "errors"

// Store-level sentinel errors. The application layer maps these onto
// its own taxonomy before they reach a handler.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
