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

// ErrConflict indicates that the operation is not legal in the resource's
// current state (an illegal lifecycle transition, e.g. editing a confirmed entry).
var ErrConflict = errors.New("operation conflicts with current state")

// ErrConcurrentModification indicates that the caller acted on a stale
// version of the resource and must retry with fresh state.
var ErrConcurrentModification = errors.New("resource was modified concurrently")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it to surface infrastructure failures without leaking
// driver-level detail to callers.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
