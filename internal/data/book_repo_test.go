package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
	"github.com/homelib/homelib-api/internal/testutil"
)

func createTestOwner(t *testing.T, db *sql.DB, prefix string) int64 {
	t.Helper()
	return testutil.InsertUser(t, db, testutil.UniqueUsername(prefix, time.Now().UnixNano()))
}

func strPtr(s string) *string { return &s }

func TestBookRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "crud")

		// create
		book, err := repo.Create(ctx, owner, testutil.NewBookRequest().
			WithTitle("Dune").
			WithAuthor("Frank Herbert").
			WithDescription("Spice and sand.").
			Build())
		require.NoError(t, err)
		require.NotZero(t, book.ID)
		assert.Equal(t, owner, book.OwnerID)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Spice and sand.", book.Description)
		assert.NotZero(t, book.CreatedAt)

		// description defaults to empty
		second, err := repo.Create(ctx, owner, testutil.NewBookRequest().
			WithTitle("Hyperion").
			WithAuthor("Dan Simmons").
			Build())
		require.NoError(t, err)
		assert.Empty(t, second.Description)

		// get
		got, err := repo.GetByID(ctx, owner, book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.Title, got.Title)

		// list in insertion order
		books, err := repo.List(ctx, owner, "")
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, "Hyperion", books[1].Title)

		// full update
		updated, err := repo.Update(ctx, owner, book.ID, model.UpdateBookRequest{
			Title:       strPtr("Dune Messiah"),
			Author:      strPtr("F. Herbert"),
			Description: strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, "F. Herbert", updated.Author)
		assert.Empty(t, updated.Description)

		// delete
		deleted, err := repo.Delete(ctx, owner, book.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, owner, book.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)

		// deleting again reports nothing removed
		deleted, err = repo.Delete(ctx, owner, book.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestBookRepo_PartialUpdate(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "partial")

		book, err := repo.Create(ctx, owner, testutil.NewBookRequest().
			WithTitle("Original Title").
			WithAuthor("Original Author").
			WithDescription("Original description.").
			Build())
		require.NoError(t, err)

		// only author changes; title and description stay untouched
		updated, err := repo.Update(ctx, owner, book.ID, model.UpdateBookRequest{
			Author: strPtr("New Author"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Original Title", updated.Title)
		assert.Equal(t, "New Author", updated.Author)
		assert.Equal(t, "Original description.", updated.Description)
	})
}

func TestBookRepo_Update_Validation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "upd_valid")

		book, err := repo.Create(ctx, owner, testutil.NewBookRequest().Build())
		require.NoError(t, err)

		// empty update rejected
		_, err = repo.Update(ctx, owner, book.ID, model.UpdateBookRequest{})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))

		// blank title rejected
		_, err = repo.Update(ctx, owner, book.ID, model.UpdateBookRequest{Title: strPtr("  ")})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "title", apperrors.GetField(err))
	})
}

func TestBookRepo_Create_Validation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "new_valid")

		_, err := repo.Create(ctx, owner, testutil.NewBookRequest().WithTitle("").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "title", apperrors.GetField(err))

		_, err = repo.Create(ctx, owner, testutil.NewBookRequest().WithAuthor("").Build())
		require.Error(t, err)
		assert.Equal(t, "author", apperrors.GetField(err))
	})
}

// Ownership scoping: user B must see user A's book as missing on every
// operation, not as forbidden.
func TestBookRepo_OwnershipIsolation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		ownerA := createTestOwner(t, db, "owner_a")
		ownerB := createTestOwner(t, db, "owner_b")

		book, err := repo.Create(ctx, ownerA, testutil.NewBookRequest().Build())
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, ownerB, book.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)

		_, err = repo.Update(ctx, ownerB, book.ID, model.UpdateBookRequest{Title: strPtr("Hijacked")})
		assert.ErrorIs(t, err, ErrBookNotFound)

		deleted, err := repo.Delete(ctx, ownerB, book.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		booksB, err := repo.List(ctx, ownerB, "")
		require.NoError(t, err)
		assert.Empty(t, booksB)

		// A's book is intact.
		got, err := repo.GetByID(ctx, ownerA, book.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "Hijacked", got.Title)
	})
}

func TestBookRepo_Search(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "search")

		seed := []struct{ title, author string }{
			{"Harry Potter and the Philosopher's Stone", "J. K. Rowling"},
			{"The Hobbit", "J. R. R. Tolkien"},
			{"A History of Magic", "Bathilda Bagshot"},
		}
		for _, s := range seed {
			_, err := repo.Create(ctx, owner, testutil.NewBookRequest().
				WithTitle(s.title).WithAuthor(s.author).Build())
			require.NoError(t, err)
		}

		tests := []struct {
			search string
			want   int
		}{
			{"harry", 1},
			{"rowling", 1}, // author field
			{"ROW", 1},     // case-insensitive substring
			{"hobbit", 1},
			{"magic", 1},
			{"j.", 2}, // matches both authors
			{"nothing-here", 0},
			{"", 3}, // empty search lists everything
		}
		for _, tt := range tests {
			books, err := repo.List(ctx, owner, tt.search)
			require.NoError(t, err, "search %q", tt.search)
			assert.Len(t, books, tt.want, "search %q", tt.search)
		}
	})
}

// LIKE metacharacters in the search term match literally.
func TestBookRepo_Search_EscapesLikePatterns(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewBookRepo(db)
		owner := createTestOwner(t, db, "like")

		_, err := repo.Create(ctx, owner, testutil.NewBookRequest().
			WithTitle("100% Proof").WithAuthor("Anonymous").Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, owner, testutil.NewBookRequest().
			WithTitle("1000 Leagues").WithAuthor("Anonymous").Build())
		require.NoError(t, err)

		books, err := repo.List(ctx, owner, "100%")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "100% Proof", books[0].Title)

		// A bare underscore is not a single-character wildcard.
		books, err = repo.List(ctx, owner, "_")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}
