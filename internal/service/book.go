package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homelib/homelib-api/internal/core"
	"github.com/homelib/homelib-api/internal/data"
	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// BookServiceOptions groups dependencies for BookService.
type BookServiceOptions struct {
	Repo   core.BookRepository // Required: book repository
	Logger *slog.Logger        // Optional: structured logger
}

// BookService provides business logic for book operations. Every method
// takes the acting owner's ID; books of other users are invisible and
// indistinguishable from missing ones.
type BookService struct {
	repo   core.BookRepository
	logger *slog.Logger
}

// NewBookService constructs a new BookService.
func NewBookService(opts BookServiceOptions) (*BookService, error) {
	if opts.Repo == nil {
		return nil, errors.New("BookRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "book_service")
	}

	return &BookService{repo: opts.Repo, logger: logger}, nil
}

// Create adds a book to the owner's library.
func (s *BookService) Create(ctx context.Context, ownerID int64, req *model.CreateBookRequest) (*model.Book, error) {
	book, err := s.repo.Create(ctx, ownerID, req)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "book created", "book_id", book.ID, "owner_id", ownerID)
	}
	return book, nil
}

// List returns the owner's books, optionally narrowed by a case-insensitive
// substring search over title and author.
func (s *BookService) List(ctx context.Context, ownerID int64, search string) ([]*model.Book, error) {
	books, err := s.repo.List(ctx, ownerID, search)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Get returns a single book owned by ownerID.
func (s *BookService) Get(ctx context.Context, ownerID, id int64) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, data.ErrBookNotFound) {
			return nil, apperrors.NotFound("Book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// Update applies the non-nil fields of req to a book owned by ownerID.
func (s *BookService) Update(ctx context.Context, ownerID, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	book, err := s.repo.Update(ctx, ownerID, id, req)
	if err != nil {
		if errors.Is(err, data.ErrBookNotFound) {
			return nil, apperrors.NotFound("Book not found")
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "book updated", "book_id", id, "owner_id", ownerID)
	}
	return book, nil
}

// Delete removes a book owned by ownerID.
func (s *BookService) Delete(ctx context.Context, ownerID, id int64) error {
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Book not found")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "book deleted", "book_id", id, "owner_id", ownerID)
	}
	return nil
}
