package response

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Envelope is the uniform wire format: the HTTP status is mirrored into the
// body so clients can read one shape for every outcome.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// FieldError is one violated validation rule.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ValidationError writes a 400 envelope carrying every violated field.
// ozzo's validation.Errors is a map, so paths are sorted for stable output.
func ValidationError(c *gin.Context, err error) {
	fields := Flatten(err)
	Write(c, http.StatusBadRequest, "Validation error", fields)
}

// Flatten converts a validation error into a list of {path, message} pairs.
// Errors that are not ozzo field maps become a single unkeyed entry.
func Flatten(err error) []FieldError {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []FieldError{{Path: "", Message: err.Error()}}
	}

	paths := make([]string, 0, len(verrs))
	for path := range verrs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fields := make([]FieldError, 0, len(paths))
	for _, path := range paths {
		fields = append(fields, FieldError{Path: path, Message: verrs[path].Error()})
	}
	return fields
}

func InternalError(c *gin.Context) {
	Write(c, http.StatusInternalServerError, "Internal server error", nil)
}
