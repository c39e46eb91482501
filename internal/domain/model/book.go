package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// Book is a record in a user's personal collection. Every book has exactly
// one owner; all repository reads and writes are filtered by OwnerID.
type Book struct {
	ID          int64     `db:"id"          json:"id"`
	OwnerID     int64     `db:"owner_id"    json:"owner_id"`
	Title       string    `db:"title"       json:"title"`
	Author      string    `db:"author"      json:"author"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
}

const (
	titleMaxLen       = 200
	authorMaxLen      = 100
	descriptionMaxLen = 1000
)

// CreateBookRequest carries the fields for creating a book.
// Description is optional and defaults to empty.
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description"`
}

// Validate checks field lengths for creation.
func (r *CreateBookRequest) Validate() error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if err := validateAuthor(r.Author); err != nil {
		return err
	}
	if r.Description != nil {
		if err := validateDescription(*r.Description); err != nil {
			return err
		}
	}
	return nil
}

// DescriptionOrEmpty returns the description value, defaulting to "".
func (r *CreateBookRequest) DescriptionOrEmpty() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}

// UpdateBookRequest carries a partial update. Nil pointers mean "leave
// unchanged"; a present-but-empty value is applied and then rejected by
// validation for required fields. All three fields are optional, including
// Description.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
}

// Validate checks the supplied fields. At least one field must be present.
func (r *UpdateBookRequest) Validate() error {
	if r.Title == nil && r.Author == nil && r.Description == nil {
		return apperrors.Validation("At least one field must be updated.")
	}
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Author != nil {
		if err := validateAuthor(*r.Author); err != nil {
			return err
		}
	}
	if r.Description != nil {
		if err := validateDescription(*r.Description); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.ValidationField("title", "Title is required and cannot be empty.")
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		return apperrors.ValidationField("title", "Title cannot exceed 200 characters.")
	}
	return nil
}

func validateAuthor(author string) error {
	if strings.TrimSpace(author) == "" {
		return apperrors.ValidationField("author", "Author is required and cannot be empty.")
	}
	if utf8.RuneCountInString(author) > authorMaxLen {
		return apperrors.ValidationField("author", "Author cannot exceed 100 characters.")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > descriptionMaxLen {
		return apperrors.ValidationField("description", "Description cannot exceed 1000 characters.")
	}
	return nil
}
