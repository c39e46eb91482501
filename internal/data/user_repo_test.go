package data

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelib/homelib-api/internal/testutil"
)

func TestUserRepo_Create_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		username := testutil.UniqueUsername("alice", time.Now().UnixNano())
		user, err := repo.Create(ctx, username, "hash-value")
		require.NoError(t, err)
		require.NotZero(t, user.ID)
		assert.Equal(t, username, user.Username)
		assert.Equal(t, "hash-value", user.PasswordHash)
		assert.NotZero(t, user.CreatedAt)

		byName, err := repo.GetByUsername(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, username, byID.Username)
	})
}

func TestUserRepo_GetByUsername_CaseSensitive(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		username := testutil.UniqueUsername("casefold", time.Now().UnixNano())
		_, err := repo.Create(ctx, username, "x")
		require.NoError(t, err)

		// Lookups do not fold case; a different casing is a different user.
		_, err = repo.GetByUsername(ctx, "CASEFOLD")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_GetMissing(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		_, err := repo.GetByUsername(ctx, "no-such-user")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		username := testutil.UniqueUsername("dup", time.Now().UnixNano())
		_, err := repo.Create(ctx, username, "x")
		require.NoError(t, err)

		_, err = repo.Create(ctx, username, "y")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

// Concurrent registrations of the same username must be serialized by the
// unique index: exactly one insert wins, every other one surfaces
// ErrUsernameTaken.
func TestUserRepo_Create_ConcurrentDuplicates(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		const attempts = 16
		username := testutil.UniqueUsername("race", time.Now().UnixNano())

		var wg sync.WaitGroup
		results := make(chan error, attempts)
		start := make(chan struct{})

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := repo.Create(ctx, username, "x")
				results <- err
			}()
		}

		close(start)
		wg.Wait()
		close(results)

		var wins, conflicts int
		for err := range results {
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, ErrUsernameTaken):
				conflicts++
			}
		}

		assert.Equal(t, 1, wins)
		assert.Equal(t, attempts-1, conflicts)

		// And exactly one row exists.
		var count int
		err := db.QueryRowContext(ctx,
			"SELECT count(*) FROM users WHERE username = $1", username).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestUserRepo_Create_StoresUsernameVerbatim(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewUserRepo(db)

		username := "  " + testutil.UniqueUsername("padded", time.Now().UnixNano()) + "  "
		user, err := repo.Create(ctx, username, "x")
		require.NoError(t, err)
		assert.Equal(t, username, user.Username)

		// The padded name round-trips through lookup unchanged.
		found, err := repo.GetByUsername(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})
}
