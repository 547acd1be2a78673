package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Sentinels matched through errors.Is.
var (
	ErrLoad             = stderrors.New("load failed")
	ErrUnknownPlayer    = stderrors.New("unknown player")
	ErrInvalidParameter = stderrors.New("invalid parameter")
)

// LoadError reports a record source that could not be turned into a store.
type LoadError struct {
	Source string // path or description of the source
	Row    int    // 1-based data row, 0 when not row specific
	Column string // offending column, empty when not column specific
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Source
	if e.Row > 0 {
		msg += fmt.Sprintf(": row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %s", e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// UnknownPlayerError is returned when a player identifier matches no records.
type UnknownPlayerError struct {
	Player string
}

func (e *UnknownPlayerError) Error() string {
	return fmt.Sprintf("unknown player %q", e.Player)
}

func (e *UnknownPlayerError) Is(target error) bool { return target == ErrUnknownPlayer }

// InvalidParameterError rejects a query parameter before any record is read.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// NewInvalidParameter is a shorthand for InvalidParameterError.
func NewInvalidParameter(name, reason string) error {
	return &InvalidParameterError{Name: name, Reason: reason}
}

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// FromDomain converts a store or query error to an AppError.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	var unknown *UnknownPlayerError
	if stderrors.As(err, &unknown) {
		e := NewNotFoundError("player", unknown.Player)
		e.Err = err
		return e
	}
	var invalid *InvalidParameterError
	if stderrors.As(err, &invalid) {
		e := NewValidationError(invalid.Name, invalid.Reason)
		e.Err = err
		return e
	}
	return NewInternalError(err)
}
