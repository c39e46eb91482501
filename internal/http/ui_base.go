package httpx

import (
	"log/slog"
	"net/http"

	apperrors "github.com/homelib/homelib-api/internal/errors"
	"github.com/homelib/homelib-api/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

// Compile-time interface assertions to ensure concrete services satisfy the handler interfaces.
var (
	_ AuthAPIService = (*service.AuthService)(nil)
	_ BooksService   = (*service.BookService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T      *TemplateRenderer
	Auth   AuthAPIService
	Books  BooksService
	Logger *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage renders a page template, falling back to a plain 500 on template failure.
func (h *UIHandlers) renderPage(w http.ResponseWriter, status int, page string, data any) {
	if err := h.T.RenderPage(w, status, page, data); err != nil {
		h.logger().Error("page render failed", slog.String("page", page), slog.Any("error", err))
	}
}

// Index redirects to the books list for signed-in users and to the login
// page for everyone else.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentityFromContext(r.Context()); ok {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// NotFound renders the HTML 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Page Not Found", CurrentPage: PageNotFound}).Build()
	h.renderPage(w, http.StatusNotFound, "not-found", data)
}

// formErrorParts splits a service error into field-level errors and a general
// message for form re-rendering.
func formErrorParts(err error) (map[string]string, string) {
	switch {
	case apperrors.IsValidation(err):
		if field := apperrors.GetField(err); field != "" {
			return map[string]string{field: err.Error()}, errMsgFixBelow
		}
		return nil, err.Error()
	case apperrors.IsConflict(err), apperrors.IsUnauthorized(err):
		return nil, err.Error()
	default:
		return nil, "An unexpected error occurred. Please try again."
	}
}

// formErrorStatus maps a service error to the status code used when
// re-rendering the form.
func formErrorStatus(err error) int {
	switch {
	case apperrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperrors.IsValidation(err), apperrors.IsConflict(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
