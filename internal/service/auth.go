package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/homelib/homelib-api/internal/core"
	"github.com/homelib/homelib-api/internal/data"
	"github.com/homelib/homelib-api/internal/domain/auth"
	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository // Required: user repository
	Hasher PasswordHasher      // Required: password hasher
	Tokens *TokenService       // Required: token issuer/validator
	Logger *slog.Logger        // Optional: structured logger
}

// AuthService orchestrates registration, login, and token resolution.
type AuthService struct {
	users  core.UserRepository
	hasher PasswordHasher
	tokens *TokenService
	logger *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Hasher == nil {
		return nil, errors.New("PasswordHasher is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("TokenService is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		users:  opts.Users,
		hasher: opts.Hasher,
		tokens: opts.Tokens,
		logger: logger,
	}, nil
}

// Register creates a new user from credentials and returns a fresh access
// token, always valid for 30 minutes regardless of the configured lifetime.
// Uniqueness of the username is enforced by the storage layer, so concurrent
// registrations of the same name yield exactly one user; the losers see a
// conflict error.
func (s *AuthService) Register(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user, err := s.users.Create(ctx, creds.Username, hash)
	if err != nil {
		if errors.Is(err, data.ErrUsernameTaken) {
			return nil, apperrors.Conflict("Username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	}

	return s.issueToken(user.Username, DefaultTokenTTL)
}

// Login verifies credentials and returns a fresh access token. A missing
// user and a wrong password produce the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Incorrect username or password")
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if verifyErr := s.hasher.Verify(creds.Password, user.PasswordHash); verifyErr != nil {
		return nil, apperrors.Unauthorized("Incorrect username or password")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "username", user.Username)
	}

	return s.issueToken(user.Username, s.tokens.TTL())
}

// ResolveToken validates a bearer token and resolves it to a live identity.
// A syntactically valid token for a since-deleted user is rejected the same
// way as a forged one.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*auth.Identity, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Could not validate credentials")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Could not validate credentials")
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	return &auth.Identity{UserID: user.ID, Username: user.Username}, nil
}

func (s *AuthService) issueToken(username string, ttl time.Duration) (*model.TokenResponse, error) {
	token, err := s.tokens.IssueWithTTL(username, ttl)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to issue token")
	}
	return &model.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
