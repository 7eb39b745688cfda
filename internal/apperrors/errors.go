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

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrNotEditable indicates a mutation attempt against an invoice whose status
// no longer permits edits (paid, cancelled or voided).
var ErrNotEditable = errors.New("invoice is not editable in its current status")

// ErrDuplicateBilling indicates that a time entry is already linked to an invoice.
var ErrDuplicateBilling = errors.New("time entry already billed on another invoice")

// ErrInvalidTransition indicates an invoice status move outside the allowed table.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// ErrRoleInUse indicates a project role deletion blocked by existing assignments.
var ErrRoleInUse = errors.New("project role is referenced by assignments")

// AppError carries an HTTP-ish status code alongside a message and the
// underlying cause. Repositories wrap infrastructure failures in it.
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

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
