package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homelib/homelib-api/internal/domain/model"
)

// BookRequestBuilder provides a fluent interface for building CreateBookRequest objects for testing.
type BookRequestBuilder struct {
	req *model.CreateBookRequest
}

// NewBookRequest creates a new BookRequestBuilder with sensible defaults.
func NewBookRequest() *BookRequestBuilder {
	return &BookRequestBuilder{
		req: &model.CreateBookRequest{
			Title:  "The Go Programming Language",
			Author: "Donovan & Kernighan",
		},
	}
}

// WithTitle sets the book title.
func (b *BookRequestBuilder) WithTitle(title string) *BookRequestBuilder {
	b.req.Title = title
	return b
}

// WithAuthor sets the book author.
func (b *BookRequestBuilder) WithAuthor(author string) *BookRequestBuilder {
	b.req.Author = author
	return b
}

// WithDescription sets the book description.
func (b *BookRequestBuilder) WithDescription(description string) *BookRequestBuilder {
	b.req.Description = &description
	return b
}

// Build returns the constructed request.
func (b *BookRequestBuilder) Build() *model.CreateBookRequest {
	return b.req
}

// InsertUser inserts a user row directly and returns its ID. The hash does
// not need to be a real bcrypt hash for repository-level tests.
func InsertUser(t TestingTB, db *sql.DB, username string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id",
		username, "x").Scan(&id)
	if err != nil {
		t.Fatalf("Failed to insert user %s: %v", username, err)
	}
	return id
}

// UniqueUsername returns a username unlikely to collide across tests sharing a DB.
func UniqueUsername(prefix string, n int64) string {
	return fmt.Sprintf("%s_%d", prefix, n)
}
