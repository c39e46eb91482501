package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/homelib/homelib-api/internal/domain/model"
)

// BooksService is a minimal interface for the book handlers' needs.
type BooksService interface {
	Create(ctx context.Context, ownerID int64, req *model.CreateBookRequest) (*model.Book, error)
	List(ctx context.Context, ownerID int64, search string) ([]*model.Book, error)
	Get(ctx context.Context, ownerID, id int64) (*model.Book, error)
	Update(ctx context.Context, ownerID, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// BookHandlers provides HTTP handlers for book CRUD. Every handler runs
// behind RequireAuth, so a missing identity is a wiring bug, not user error.
type BookHandlers struct {
	Svc BooksService
}

// owner extracts the authenticated owner ID or writes a 401.
func owner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("authentication required"),
		})
		return 0, false
	}
	return identity.UserID, true
}

// Create handles HTTP requests to add a book to the caller's library.
func (h *BookHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req model.CreateBookRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	book, err := h.Svc.Create(r.Context(), ownerID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, book)
}

// List handles HTTP requests to list the caller's books, optionally filtered
// by the search query param.
func (h *BookHandlers) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	books, err := h.Svc.List(r.Context(), ownerID, r.URL.Query().Get("search"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if books == nil {
		books = []*model.Book{}
	}
	WriteJSON(w, http.StatusOK, books)
}

// GetByID handles HTTP requests to fetch a single book.
func (h *BookHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	book, err := h.Svc.Get(r.Context(), ownerID, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, book)
}

// Update handles HTTP requests to partially update a book.
func (h *BookHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	var req model.UpdateBookRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	book, err := h.Svc.Update(r.Context(), ownerID, id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, book)
}

// Delete handles HTTP requests to remove a book.
func (h *BookHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), ownerID, id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
}
