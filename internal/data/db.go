// Package data implements the repositories over PostgreSQL using pgx.
package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/homelib/homelib-api/internal/data/pgxutil"
)

// withPgxQueryOne runs a query expected to return exactly one row and scans
// it into dst by column name.
func withPgxQueryOne[T any](ctx context.Context, db *sql.DB, dst *T, q string, args []any) error {
	return pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		if err != nil {
			return err
		}
		*dst = out
		return nil
	})
}

// withPgxQueryAll runs a query and scans every row into a slice by column name.
func withPgxQueryAll[T any](ctx context.Context, db *sql.DB, dst *[]T, q string, args []any) error {
	return pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
		if err != nil {
			return err
		}
		*dst = out
		return nil
	})
}
