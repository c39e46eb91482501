package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrBookNotFound is returned when a book does not exist or belongs to a
	// different owner. The two cases are intentionally indistinguishable so a
	// caller cannot probe for books it does not own.
	ErrBookNotFound = errors.New("book not found")
)
