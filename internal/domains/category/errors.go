package category

import (
	"errors"
	"net/http"
)

// Sentinel errors double as client-facing messages, so their text follows
// the wire contract rather than Go error conventions.
var (
	ErrCategoryNotFound  = errors.New("Category not found")
	ErrInvalidCategoryID = errors.New("Invalid category ID")
	ErrDuplicateCategory = errors.New("Category already exists")
	ErrCategoryHasMovies = errors.New("Cannot delete category with associated movies")
)

// ConflictError wraps a conflict sentinel together with the conflicting
// record(s), which the handler surfaces in the response data field.
type ConflictError struct {
	Err  error
	Data interface{}
}

func (e *ConflictError) Error() string { return e.Err.Error() }

func (e *ConflictError) Unwrap() error { return e.Err }

// GetHTTPStatusCode maps a service error to its response status. Anything
// unrecognized is an internal error.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCategoryID):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateCategory), errors.Is(err, ErrCategoryHasMovies):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
