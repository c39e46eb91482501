package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/homelib/homelib-api/config"
	"github.com/homelib/homelib-api/internal/data"
	"github.com/homelib/homelib-api/internal/service"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Auth  *service.AuthService
	Books *service.BookService
}

// ServiceDeps groups dependencies for building the service container.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Logger *slog.Logger
}

// NewServices wires repositories and services from shared infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	userRepo := data.NewUserRepo(deps.DB)
	bookRepo := data.NewBookRepo(deps.DB)

	tokens, err := service.NewTokenService(service.TokenServiceOptions{
		Secret: []byte(deps.Config.Auth.TokenSecret),
		TTL:    deps.Config.Auth.TokenTTL,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token service: %w", err)
	}

	hasher := service.NewBcryptHasher(service.WithCost(deps.Config.Auth.BcryptCost))

	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Users:  userRepo,
		Hasher: hasher,
		Tokens: tokens,
		Logger: deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	books, err := service.NewBookService(service.BookServiceOptions{
		Repo:   bookRepo,
		Logger: deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build book service: %w", err)
	}

	return ServiceContainer{Auth: auth, Books: books}, nil
}
