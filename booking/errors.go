package booking

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an event does not apply to the
// current state of the booking flow
var ErrInvalidTransition = errors.New("transition not allowed from current state")

// ValidationError is a local, synchronous rejection of customer input. The
// flow never advances when one is returned.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for input rejected outside the flow itself
func NewValidationError(code, field, message string) error {
	return &ValidationError{Code: code, Field: field, Message: message}
}

func validationError(code, field, message string) error {
	return NewValidationError(code, field, message)
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
