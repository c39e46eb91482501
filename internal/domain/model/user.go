package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// User represents a registered account. The password hash is opaque to every
// layer above the password hasher and is never serialized.
type User struct {
	ID           int64     `db:"id"            json:"id"`
	Username     string    `db:"username"      json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
	passwordMaxLen = 72
)

// Credentials carries a username/password pair from either surface
// (JSON body or form post) before hashing.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks field lengths. Username comparison is case-sensitive and
// no normalization is applied.
func (c Credentials) Validate() error {
	username := strings.TrimSpace(c.Username)
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return apperrors.ValidationField("username",
			"Username must be between 3 and 50 characters.")
	}
	if n := utf8.RuneCountInString(c.Password); n < passwordMinLen || n > passwordMaxLen {
		return apperrors.ValidationField("password",
			"Password must be between 6 and 72 characters.")
	}
	return nil
}

// TokenResponse is the JSON payload returned by the register and login endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
