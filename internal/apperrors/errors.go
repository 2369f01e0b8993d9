package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that forbids the requested change.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRegimeMismatch indicates a credit note whose tax split does not match the
// tax regime of its parent invoice.
var ErrRegimeMismatch = errors.New("tax regime mismatch with parent invoice")

// ErrMalformedRecord indicates an export input record missing required fields.
var ErrMalformedRecord = errors.New("malformed record for export")

// ErrRangeTooLarge indicates a date window that would produce more rows than the
// configured cap.
var ErrRangeTooLarge = errors.New("date range produces too many rows")

// AppError wraps a lower-level error with an application status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
