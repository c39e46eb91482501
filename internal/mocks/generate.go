// Package mocks provides mock implementations for testing the home library service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockBookRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(book, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByUsername, GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/homelib/homelib-api/internal/core UserRepository

// Generate mock for BookRepository interface from internal/core package.
// This creates MockBookRepository with methods for all BookRepository interface methods:
// Create, List, GetByID, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=book_repository_mock.go github.com/homelib/homelib-api/internal/core BookRepository
