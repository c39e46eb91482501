// Package core defines the repository interfaces consumed by the service
// layer. Concrete implementations live in internal/data.
package core

import (
	"context"

	"github.com/homelib/homelib-api/internal/domain/model"
)

// UserRepository persists user records.
type UserRepository interface {
	// Create inserts a new user. Duplicate usernames surface as
	// data.ErrUsernameTaken, backed by the storage-level unique constraint.
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	// GetByUsername fetches a user by exact (case-sensitive) username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByID fetches a user by primary key.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// BookRepository persists book records. Every operation is scoped by owner:
// a book belonging to another user behaves exactly like a missing one.
type BookRepository interface {
	Create(ctx context.Context, ownerID int64, req *model.CreateBookRequest) (*model.Book, error)
	// List returns the owner's books in insertion order. A non-empty search
	// narrows to case-insensitive substring matches on title OR author.
	List(ctx context.Context, ownerID int64, search string) ([]*model.Book, error)
	GetByID(ctx context.Context, ownerID, id int64) (*model.Book, error)
	// Update applies only the non-nil fields of req.
	Update(ctx context.Context, ownerID, id int64, req model.UpdateBookRequest) (*model.Book, error)
	// Delete hard-deletes and reports whether a row was removed.
	Delete(ctx context.Context, ownerID, id int64) (bool, error)
}
