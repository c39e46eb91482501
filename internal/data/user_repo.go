package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// SQL query constants for static queries.
const (
	userInsertQuery = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at`

	userGetByUsernameQuery = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`

	userGetByIDQuery = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = $1`
)

// Create inserts a new user. The username is stored exactly as given;
// normalization is the caller's job. The unique index on username is the
// real serialization point for concurrent registrations; a unique violation
// maps to ErrUsernameTaken regardless of any prior existence check.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	var out model.User
	if err := r.queryOne(ctx, &out, userInsertQuery, username, passwordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByUsername retrieves a user by exact username. The comparison is
// case-sensitive by design.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByUsernameQuery, "failed to get user by username", username)
}

// GetByID retrieves a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// getByQuery executes a query expected to return a single user.
func (r *UserRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.User, error) {
	var user model.User
	err := r.queryOne(ctx, &user, q, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, apperrors.MapDBError(err))
	}
	return &user, nil
}

func (r *UserRepo) queryOne(ctx context.Context, dst *model.User, q string, args ...any) error {
	return withPgxQueryOne(ctx, r.DB, dst, q, args)
}
