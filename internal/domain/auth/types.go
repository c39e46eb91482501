package auth

// Package auth contains domain-level types for authentication.
// It is pure and free of transport/adapter concerns.

// Identity represents the authenticated principal resolved from a token.
type Identity struct {
	// UserID is the stable numeric identifier of the user row.
	UserID int64
	// Username is the login name carried in the token's subject claim.
	Username string
}
