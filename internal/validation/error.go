package validation

import "errors"

// Error is a user-facing validation failure. The mutation that produced it
// was rejected and nothing was persisted.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// New returns a validation error for the given field.
func New(field, message string) error {
	return &Error{Field: field, Message: message}
}

// IsValidation reports whether err (or anything it wraps) is a validation error.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
