// Package errors defines the application error taxonomy.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeDecode       ErrorType = "DECODE"
	ErrorTypeEncode       ErrorType = "ENCODE"
	ErrorTypeStorage      ErrorType = "STORAGE"
	ErrorTypeWrite        ErrorType = "WRITE"
	ErrorTypeQuery        ErrorType = "QUERY"
	ErrorTypeAuth         ErrorType = "AUTH"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnavailable  ErrorType = "UNAVAILABLE"
	ErrorTypeInternal     ErrorType = "INTERNAL"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for different error types

// NewValidation creates a validation error
func NewValidation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNotFound creates a not found error
func NewNotFound(message string) error {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message string) error {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewDecode creates an image decode error
func NewDecode(message string, err error) error {
	return &AppError{Type: ErrorTypeDecode, Message: message, Err: err}
}

// NewEncode creates an image encode error
func NewEncode(message string, err error) error {
	return &AppError{Type: ErrorTypeEncode, Message: message, Err: err}
}

// NewStorage creates a blob storage error
func NewStorage(message string, err error) error {
	return &AppError{Type: ErrorTypeStorage, Message: message, Err: err}
}

// NewWrite creates a document write error
func NewWrite(message string, err error) error {
	return &AppError{Type: ErrorTypeWrite, Message: message, Err: err}
}

// NewQuery creates a document query error
func NewQuery(message string, err error) error {
	return &AppError{Type: ErrorTypeQuery, Message: message, Err: err}
}

// NewAuth creates an authentication provider error
func NewAuth(message string, err error) error {
	return &AppError{Type: ErrorTypeAuth, Message: message, Err: err}
}

// NewConflict creates a conflict error (e.g. save already in flight)
func NewConflict(message string) error {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewUnavailable creates an error for operations gated on session readiness
func NewUnavailable(message string) error {
	return &AppError{Type: ErrorTypeUnavailable, Message: message}
}

// NewInternal creates an internal error
func NewInternal(message string, err error) error {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve the type
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// TypeOf returns the error type, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Type checking functions

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool { return is(err, ErrorTypeValidation) }

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return is(err, ErrorTypeNotFound) }

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool { return is(err, ErrorTypeUnauthorized) }

// IsDecode checks if an error is an image decode error
func IsDecode(err error) bool { return is(err, ErrorTypeDecode) }

// IsEncode checks if an error is an image encode error
func IsEncode(err error) bool { return is(err, ErrorTypeEncode) }

// IsStorage checks if an error is a blob storage error
func IsStorage(err error) bool { return is(err, ErrorTypeStorage) }

// IsWrite checks if an error is a document write error
func IsWrite(err error) bool { return is(err, ErrorTypeWrite) }

// IsQuery checks if an error is a document query error
func IsQuery(err error) bool { return is(err, ErrorTypeQuery) }

// IsAuth checks if an error is an authentication provider error
func IsAuth(err error) bool { return is(err, ErrorTypeAuth) }

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool { return is(err, ErrorTypeConflict) }

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool { return is(err, ErrorTypeUnavailable) }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return is(err, ErrorTypeInternal) }
