package repository

import "errors"

var (
	// ErrUserNotFound is returned when no row exists for the requested id.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("user id already registered")
)
