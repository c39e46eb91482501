package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the access token lifetime used when no explicit TTL is given.
const DefaultTokenTTL = 30 * time.Minute

// ErrInvalidToken is returned when a token fails signature, shape, or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenServiceOptions groups dependencies for TokenService.
type TokenServiceOptions struct {
	Secret []byte        // Required: HMAC signing key
	TTL    time.Duration // Optional: token lifetime, defaults to DefaultTokenTTL
}

// TokenService issues and validates signed access tokens. Tokens are
// HS256 JWTs carrying the username as subject plus an expiry; the service
// keeps no per-token state, so issued tokens remain valid until they expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a new TokenService.
func NewTokenService(opts TokenServiceOptions) (*TokenService, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: opts.Secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given username using the configured TTL.
func (s *TokenService) Issue(username string) (string, error) {
	return s.IssueWithTTL(username, s.ttl)
}

// IssueWithTTL signs a token for the given username expiring after ttl.
func (s *TokenService) IssueWithTTL(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning the subject username.
// Any failure (bad signature, wrong algorithm, expired, missing subject)
// collapses into ErrInvalidToken so callers cannot distinguish why.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return s.secret, nil
}
