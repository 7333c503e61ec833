package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is not visible
	// to the requesting scope.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations (email).
	ErrDuplicate = errors.New("duplicate")
)
