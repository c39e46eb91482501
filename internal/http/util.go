package httpx

import (
	"net/http"
	"strconv"

	apperrors "github.com/homelib/homelib-api/internal/errors"
)

// parseIDPath returns the {id} path value as an int64. A missing or
// non-numeric segment behaves like a missing resource.
func parseIDPath(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.NotFound("Book not found")
	}
	return id, nil
}

// optionalFormField returns a pointer to the form value when the field was
// submitted, nil otherwise. Distinguishes absent from empty for partial updates.
func optionalFormField(r *http.Request, name string) *string {
	if !r.Form.Has(name) {
		return nil
	}
	v := r.Form.Get(name)
	return &v
}
