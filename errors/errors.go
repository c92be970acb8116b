// Package errors provides unified error handling for the authentication server.
// It implements structured error types with error codes and HTTP status mapping
// so every failure crossing the API boundary has the same shape.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// ValidationFailure creates a new AppError for a submission that failed
// per-field credential validation.
func ValidationFailure(message string) *AppError {
	if message == "" {
		message = "One or more fields failed validation."
	}
	return &AppError{
		Code: ErrCodeValidationFailure, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// SchemaMismatch creates a new AppError for a payload missing an expected field.
func SchemaMismatch() *AppError {
	return &AppError{
		Code: ErrCodeSchemaMismatch, Message: "Data schema is invalid",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates a new AppError for a missing, invalid, or expired
// token. The sub-cause is deliberately not exposed to the caller.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeAuthenticationFailure, Message: "Unauthorized",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a new AppError for a valid token presented against the
// wrong principal's resource. Surfaced with the same 401 status as
// authentication failures so callers cannot probe for resource existence.
func Forbidden() *AppError {
	return &AppError{
		Code: ErrCodeAuthorizationFailure, Message: "Unauthorized",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// UnsupportedHashFormat creates a new AppError for a stored password hash
// that lacks the expected tag. This is a data-integrity fault: the caller
// must abort rather than report a misleading verification result.
func UnsupportedHashFormat() *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedHashFormat, Message: "Stored credential is not in a supported hash format.",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// ConfigurationFailure creates a new AppError for invalid boot configuration.
// Fatal: the process must not start.
func ConfigurationFailure(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfigurationFailure, Message: reason,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// DatabaseError creates a new AppError for a user-store error.
func DatabaseError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: "A database error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
