package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken (comparison is case-insensitive).
	ErrDuplicateEmail = errors.New("email already registered")
)
