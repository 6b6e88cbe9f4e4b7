package repository

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("already exists")
)
