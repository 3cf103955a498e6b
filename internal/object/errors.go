package object

import (
	"errors"
	"fmt"
)

var (
	ErrRequiredField        = errors.New("required field is missing")
	ErrOutOfRange           = errors.New("value out of range")
	ErrInvalidKey           = errors.New("value is not an allowed key")
	ErrNotNumeric           = errors.New("value is not numeric")
	ErrNotInteger           = errors.New("value is not an integer")
	ErrExtensibleMisaligned = errors.New("extensible values do not fill a whole group")
	ErrTooManyFields        = errors.New("more values than declared fields")
	ErrUnknownField         = errors.New("unknown field")
)

// ValidationError reports a value that violates its object definition.
type ValidationError struct {
	Type  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid '%s': %v", e.Type, e.Err)
	}
	return fmt.Sprintf("invalid '%s' field '%s': %v", e.Type, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
