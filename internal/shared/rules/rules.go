package rules

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotBlank rejects strings that are empty after trimming whitespace.
// validation.Required and NilOrNotEmpty accept "   ", which services would
// trim down to an empty value before persisting. Nil pointers are left to
// the presence rules.
func NotBlank(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return nil
		}

		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	})
}
