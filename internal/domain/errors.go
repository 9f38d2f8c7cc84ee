package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a node (or its recorded parent) does not exist
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates an empty or otherwise invalid required field
	ValidationError struct {
		Message string
		// Missing marks a validation failure caused by a missing target id,
		// so callers can still match it with errors.Is(err, ErrNotFound).
		Missing bool
	}

	// InvalidOperationError indicates a request that is well-formed but not
	// allowed in the current state (entering a file, a second upload run, ...)
	InvalidOperationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string         { return e.Message }
func (e *ValidationError) Error() string       { return e.Message }
func (e *InvalidOperationError) Error() string { return e.Message }
func (e *UnauthorizedError) Error() string     { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *InvalidOperationError) StatusCode() int { return http.StatusConflict }
func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }

// Is allows errors.Is() to match the typed errors against the sentinels below
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Missing && target == ErrNotFound)
}
func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }
func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ConflictError represents a resource conflict with details about the existing resource
// Implements HTTPError interface for extensible error handling
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StatusCodeOf returns the HTTP status carried by err, or 500 when err does
// not implement HTTPError anywhere in its chain.
func StatusCodeOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
