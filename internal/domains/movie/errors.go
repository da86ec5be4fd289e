package movie

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors double as client-facing messages, so their text follows
// the wire contract rather than Go error conventions.
var (
	ErrMovieNotFound  = errors.New("Movie not found")
	ErrInvalidMovieID = errors.New("Invalid movie ID")
	ErrDuplicateMovie = errors.New("Movie already exists")
)

// UnknownCategoryError is returned when categoryId does not resolve to a
// live category at write time. It maps to 400, not 404: the missing record
// is part of the request body, not the request target.
type UnknownCategoryError struct {
	ID int64
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("There is no category with the given id: %d", e.ID)
}

// ConflictError wraps a conflict sentinel together with the conflicting
// record, which the handler surfaces in the response data field.
type ConflictError struct {
	Err  error
	Data interface{}
}

func (e *ConflictError) Error() string { return e.Err.Error() }

func (e *ConflictError) Unwrap() error { return e.Err }

func GetHTTPStatusCode(err error) int {
	var unknownCategory *UnknownCategoryError
	switch {
	case errors.Is(err, ErrMovieNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMovieID), errors.As(err, &unknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateMovie):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
