package services

import "errors"

var (
	// ErrNotFound means a referenced user, message or photo does not exist,
	// or the caller has no relation to it.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateLike means the like edge already exists.
	ErrDuplicateLike = errors.New("you already like this user")
	// ErrInvalidInput means the request was structurally valid but not
	// acceptable, e.g. an empty upload or a self-like.
	ErrInvalidInput = errors.New("invalid input")
)
