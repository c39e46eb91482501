package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/homelib/homelib-api/internal/data/pgxutil"
	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// BookRepo provides database operations for books. Every query filters by
// owner_id, so a book owned by someone else yields the same ErrBookNotFound
// as a book that does not exist.
type BookRepo struct {
	DB *sql.DB
}

// NewBookRepo creates a new BookRepo.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{DB: db}
}

const bookColumns = "id, owner_id, title, author, description, created_at"

const (
	bookInsertQuery = `
		INSERT INTO books (owner_id, title, author, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookColumns

	bookGetByIDQuery = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1 AND owner_id = $2`

	bookListQuery = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE owner_id = $1
		ORDER BY id`

	bookSearchQuery = `
		SELECT ` + bookColumns + `
		FROM books
		WHERE owner_id = $1 AND (title ILIKE $2 OR author ILIKE $2)
		ORDER BY id`
)

// Create inserts a new book for the given owner.
func (r *BookRepo) Create(
	ctx context.Context,
	ownerID int64,
	req *model.CreateBookRequest,
) (*model.Book, error) {
	if req == nil {
		return nil, errors.New("create book request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Book
	err := withPgxQueryOne(ctx, r.DB, &out, bookInsertQuery,
		[]any{ownerID, req.Title, req.Author, req.DescriptionOrEmpty()})
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves the owner's books in insertion order. When search is
// non-empty it narrows to case-insensitive substring matches against title
// OR author.
func (r *BookRepo) List(ctx context.Context, ownerID int64, search string) ([]*model.Book, error) {
	query := bookListQuery
	args := []any{ownerID}
	if s := strings.TrimSpace(search); s != "" {
		query = bookSearchQuery
		args = append(args, "%"+escapeLike(s)+"%")
	}

	var rowsOut []model.Book
	if err := withPgxQueryAll(ctx, r.DB, &rowsOut, query, args); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Book, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// GetByID retrieves one of the owner's books.
func (r *BookRepo) GetByID(ctx context.Context, ownerID, id int64) (*model.Book, error) {
	var book model.Book
	err := withPgxQueryOne(ctx, r.DB, &book, bookGetByIDQuery, []any{id, ownerID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID: %w", apperrors.MapDBError(err))
	}
	return &book, nil
}

// Update applies the non-nil fields of req to one of the owner's books.
// Nil pointer fields are left untouched; present-but-empty values reach
// validation and are rejected there for required fields.
func (r *BookRepo) Update(
	ctx context.Context,
	ownerID, id int64,
	req model.UpdateBookRequest,
) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := buildBookUpdateClause(req)

	var out model.Book
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id, ownerID)
		query := "UPDATE books SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)-1) +
			" AND owner_id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + bookColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete hard-deletes one of the owner's books. Returns false when the book
// is missing or owned by someone else.
func (r *BookRepo) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	var rowsAffected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM books WHERE id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return err
		}
		rowsAffected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", apperrors.MapDBError(err))
	}
	return rowsAffected > 0, nil
}

// buildBookUpdateClause builds the SQL SET clause and args for a partial update.
// Validate guarantees at least one field is present.
func buildBookUpdateClause(req model.UpdateBookRequest) (string, []any) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, *req.Title)
	}
	if req.Author != nil {
		setParts = append(setParts, fmt.Sprintf("author = $%d", nextIdx()))
		args = append(args, *req.Author)
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}

	return strings.Join(setParts, ", "), args
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
