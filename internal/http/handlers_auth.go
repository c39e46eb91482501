// Package httpx provides HTTP handlers and middleware for the home library API and UI.
package httpx

import (
	"context"
	"net/http"

	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// AuthAPIService is a minimal interface for the auth handlers' needs.
type AuthAPIService interface {
	Register(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error)
	Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error)
}

// AuthHandlers provides HTTP handlers for registration and login.
type AuthHandlers struct {
	Svc AuthAPIService
}

// Register handles HTTP requests to create a new account.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	token, err := h.Svc.Register(r.Context(), creds)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, token)
}

// Login handles HTTP requests to exchange credentials for an access token.
// Failed logins carry a WWW-Authenticate challenge alongside the 401.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if !DecodeJSON(w, r, &creds) {
		return
	}

	token, err := h.Svc.Login(r.Context(), creds)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, token)
}
