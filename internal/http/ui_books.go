package httpx

import (
	"net/http"

	"github.com/homelib/homelib-api/internal/domain/model"
	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// uiOwner extracts the authenticated owner ID. UI book routes sit behind
// RequireAuthBrowser, so absence means a wiring bug; redirect defensively.
func (h *UIHandlers) uiOwner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return 0, false
	}
	return identity.UserID, true
}

// BooksList renders the caller's library, optionally filtered by ?q=.
func (h *UIHandlers) BooksList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.uiOwner(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	books, err := h.Books.List(r.Context(), ownerID, query)

	builder := NewTemplateData(r, PageMeta{Title: "My Books", CurrentPage: PageBooks}).
		With("Books", books).
		With("Query", query)
	if err != nil {
		h.logger().Error("list books failed", "error", err, "owner_id", ownerID)
		builder.WithError("Could not load your books. Please try again.")
	}

	h.renderPage(w, http.StatusOK, "books", builder.Build())
}

// BookNew renders the empty book form.
func (h *UIHandlers) BookNew(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Add Book", CurrentPage: PageBookForm}).
		With("Mode", FormModeCreate).
		With("BookTitle", "").
		With("BookAuthor", "").
		With("BookDescription", "").
		Build()
	h.renderPage(w, http.StatusOK, "book-form", data)
}

// BookCreate processes the new-book form.
func (h *UIHandlers) BookCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.uiOwner(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	req := model.CreateBookRequest{
		Title:       r.Form.Get("title"),
		Author:      r.Form.Get("author"),
		Description: optionalFormField(r, "description"),
	}

	if _, err := h.Books.Create(r.Context(), ownerID, &req); err != nil {
		h.renderBookFormError(w, r, bookFormError{
			Mode:  FormModeCreate,
			Err:   err,
			Title: req.Title, Author: req.Author,
			Description: req.DescriptionOrEmpty(),
		})
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// BookEdit renders the edit form pre-filled with the book's current fields.
func (h *UIHandlers) BookEdit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.uiOwner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	book, err := h.Books.Get(r.Context(), ownerID, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().Error("load book failed", "error", err, "book_id", id)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Edit Book", CurrentPage: PageBookForm}).
		With("Mode", FormModeEdit).
		With("BookID", book.ID).
		With("BookTitle", book.Title).
		With("BookAuthor", book.Author).
		With("BookDescription", book.Description).
		Build()
	h.renderPage(w, http.StatusOK, "book-form", data)
}

// BookUpdate processes the edit form. The form posts every field, so this is
// a full update expressed through the partial-update request type.
func (h *UIHandlers) BookUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.uiOwner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	req := model.UpdateBookRequest{
		Title:       optionalFormField(r, "title"),
		Author:      optionalFormField(r, "author"),
		Description: optionalFormField(r, "description"),
	}

	if _, err := h.Books.Update(r.Context(), ownerID, id, req); err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.renderBookFormError(w, r, bookFormError{
			Mode: FormModeEdit, BookID: id,
			Err:   err,
			Title: r.Form.Get("title"), Author: r.Form.Get("author"),
			Description: r.Form.Get("description"),
		})
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// BookDelete processes the delete form post.
func (h *UIHandlers) BookDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.uiOwner(w, r)
	if !ok {
		return
	}

	id, err := parseIDPath(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	if err := h.Books.Delete(r.Context(), ownerID, id); err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().Error("delete book failed", "error", err, "book_id", id)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// bookFormError groups the state needed to re-render the book form after a
// failed submit.
type bookFormError struct {
	Mode        FormMode
	BookID      int64
	Err         error
	Title       string
	Author      string
	Description string
}

func (h *UIHandlers) renderBookFormError(w http.ResponseWriter, r *http.Request, e bookFormError) {
	title := "Add Book"
	if e.Mode == FormModeEdit {
		title = "Edit Book"
	}

	fieldErrors, general := formErrorParts(e.Err)
	builder := NewTemplateData(r, PageMeta{Title: title, CurrentPage: PageBookForm}).
		With("Mode", e.Mode).
		With("BookTitle", e.Title).
		With("BookAuthor", e.Author).
		With("BookDescription", e.Description).
		WithFieldErrors(fieldErrors).
		WithError(general)
	if e.Mode == FormModeEdit {
		builder.With("BookID", e.BookID)
	}

	h.renderPage(w, formErrorStatus(e.Err), "book-form", builder.Build())
}
