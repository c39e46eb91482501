package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMapDBError_ContextErrors(t *testing.T) {
	err := MapDBError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrCodeTimeout, GetCode(err))

	err = MapDBError(context.Canceled)
	assert.Equal(t, ErrCodeCanceled, GetCode(err))
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: "Key (username)=(alice) already exists.",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "username", GetField(err))
}

func TestMapDBError_UniqueViolation_ColumnName(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "username"}
	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "username", GetField(err))
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "title"}
	err := MapDBError(pgErr)
	require.True(t, IsValidation(err))
	assert.Equal(t, "title", GetField(err))
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	err := MapDBError(pgErr)
	assert.True(t, IsInternal(err))
}

func TestMapDBError_PassthroughUnknown(t *testing.T) {
	plain := errors.New("driver hiccup")
	assert.Equal(t, plain, MapDBError(plain))
}
