package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/homelib/homelib-api/internal/data"
	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
	"github.com/homelib/homelib-api/internal/mocks"
)

func newTestAuthService(t *testing.T, users *mocks.MockUserRepository) *AuthService {
	t.Helper()

	tokens, err := NewTokenService(TokenServiceOptions{Secret: testSigningSecret})
	require.NoError(t, err)

	svc, err := NewAuthService(AuthServiceOptions{
		Users:  users,
		Hasher: NewBcryptHasher(WithCost(bcrypt.MinCost)),
		Tokens: tokens,
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens, err := NewTokenService(TokenServiceOptions{Secret: testSigningSecret})
	require.NoError(t, err)
	hasher := NewBcryptHasher()

	_, err = NewAuthService(AuthServiceOptions{Hasher: hasher, Tokens: tokens})
	assert.Error(t, err)
	_, err = NewAuthService(AuthServiceOptions{Users: users, Tokens: tokens})
	assert.Error(t, err)
	_, err = NewAuthService(AuthServiceOptions{Users: users, Hasher: hasher})
	assert.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	users.EXPECT().
		Create(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, username, passwordHash string) (*model.User, error) {
			// The stored hash must verify against the original password.
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("password123")))
			return &model.User{ID: 1, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}, nil
		})

	resp, err := svc.Register(context.Background(), model.Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)

	subject, err := svc.tokens.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Register_Issues30MinuteToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)

	// Even with a longer configured lifetime, registration tokens expire
	// after 30 minutes; login tokens use the configured lifetime.
	tokens, err := NewTokenService(TokenServiceOptions{Secret: testSigningSecret, TTL: 2 * time.Hour})
	require.NoError(t, err)
	svc, err := NewAuthService(AuthServiceOptions{
		Users:  users,
		Hasher: NewBcryptHasher(WithCost(bcrypt.MinCost)),
		Tokens: tokens,
	})
	require.NoError(t, err)

	hash, err := svc.hasher.Hash("password123")
	require.NoError(t, err)
	alice := &model.User{ID: 1, Username: "alice", PasswordHash: hash}
	users.EXPECT().Create(gomock.Any(), "alice", gomock.Any()).Return(alice, nil)
	users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(alice, nil)

	creds := model.Credentials{Username: "alice", Password: "password123"}

	registered, err := svc.Register(context.Background(), creds)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), tokenExpiry(t, registered.AccessToken), time.Minute)

	loggedIn, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), tokenExpiry(t, loggedIn.AccessToken), time.Minute)
}

func tokenExpiry(t *testing.T, tokenString string) time.Time {
	t.Helper()
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return testSigningSecret, nil
	})
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	return claims.ExpiresAt.Time
}

func TestAuthService_Register_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	tests := []struct {
		name  string
		creds model.Credentials
		field string
	}{
		{"username too short", model.Credentials{Username: "ab", Password: "password123"}, "username"},
		{"password too short", model.Credentials{Username: "alice", Password: "pw"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.creds)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	users.EXPECT().
		Create(gomock.Any(), "alice", gomock.Any()).
		Return(nil, data.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), model.Credentials{Username: "alice", Password: "password123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Username already registered", err.Error())
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	hash, err := svc.hasher.Hash("password123")
	require.NoError(t, err)

	users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(&model.User{ID: 1, Username: "alice", PasswordHash: hash}, nil).
		AnyTimes()

	resp, err := svc.Login(context.Background(), model.Credentials{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	// Wrong password yields the same unauthorized error as an unknown user.
	_, err = svc.Login(context.Background(), model.Credentials{Username: "alice", Password: "nope-nope"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestAuthService_PaddedUsernameRoundtrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	// Usernames pass through to storage verbatim, so registering a padded
	// name and logging in with the identical string must succeed.
	const username = "  bob  "
	var stored *model.User

	users.EXPECT().
		Create(gomock.Any(), username, gomock.Any()).
		DoAndReturn(func(_ context.Context, name, passwordHash string) (*model.User, error) {
			stored = &model.User{ID: 1, Username: name, PasswordHash: passwordHash}
			return stored, nil
		})
	users.EXPECT().
		GetByUsername(gomock.Any(), username).
		DoAndReturn(func(_ context.Context, _ string) (*model.User, error) {
			return stored, nil
		})

	creds := model.Credentials{Username: username, Password: "password123"}
	_, err := svc.Register(context.Background(), creds)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), creds)
	require.NoError(t, err)

	subject, err := svc.tokens.Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, username, subject)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	users.EXPECT().
		GetByUsername(gomock.Any(), "ghost").
		Return(nil, data.ErrUserNotFound)

	_, err := svc.Login(context.Background(), model.Credentials{Username: "ghost", Password: "password123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Incorrect username or password", err.Error())
}

func TestAuthService_ResolveToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(&model.User{ID: 42, Username: "alice"}, nil)

	token, err := svc.tokens.Issue("alice")
	require.NoError(t, err)

	identity, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestAuthService_ResolveToken_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	_, err := svc.ResolveToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Could not validate credentials", err.Error())
}

func TestAuthService_ResolveToken_DeletedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, users)

	// The token is valid but its subject no longer exists.
	users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(nil, data.ErrUserNotFound)

	token, err := svc.tokens.Issue("alice")
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Could not validate credentials", err.Error())
}
