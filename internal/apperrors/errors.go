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

// ErrHasDependents indicates that a resource cannot be removed while other records reference it.
var ErrHasDependents = errors.New("resource has dependent records")

// ErrInternal indicates an unexpected failure, usually in the storage layer.
var ErrInternal = errors.New("internal error")

// Specific errors. Each wraps one of the categories above so callers can match either.
var (
	ErrDuplicateName      = fmt.Errorf("%w: name is already in use", ErrDuplicate)
	ErrDuplicateCode      = fmt.Errorf("%w: code is already in use", ErrDuplicate)
	ErrDuplicateReference = fmt.Errorf("%w: reference number is already in use", ErrDuplicate)
	ErrGroupNotFound      = fmt.Errorf("%w: group not found", ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found or inactive", ErrValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email address", ErrValidation)
)

// AppError carries an HTTP-ish status code alongside the underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports server-side AppErrors as ErrInternal regardless of the wrapped cause.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// NewAppError creates an AppError. A 500 code with no wrapped error is treated as ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= 500 {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
