package errors

import (
	stderrors "errors"
	"fmt"
	"math"
	"time"
)

// ErrorCode represents a jot error code.
type ErrorCode string

const (
	ErrRateLimited         ErrorCode = "RATE_LIMITED"          // 429
	ErrValidation          ErrorCode = "VALIDATION_ERROR"      // 400
	ErrInvalidEnumValue    ErrorCode = "INVALID_ENUM_VALUE"    // 400
	ErrPathViolation       ErrorCode = "PATH_VIOLATION"        // 403
	ErrExtensionNotAllowed ErrorCode = "EXTENSION_NOT_ALLOWED" // 400
	ErrPathTooLong         ErrorCode = "PATH_TOO_LONG"         // 400
	ErrSizeExceeded        ErrorCode = "SIZE_EXCEEDED"         // 413
	ErrNotFound            ErrorCode = "NOT_FOUND"             // 404
	ErrAlreadyExists       ErrorCode = "ALREADY_EXISTS"        // 409
	ErrIO                  ErrorCode = "IO_ERROR"              // 500
)

// JotError represents a structured error with code, status, and details.
type JotError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRateLimited creates a 429 error carrying the time until the next
// request would be admitted. retry_after_seconds is always positive.
func NewRateLimited(retryAfter time.Duration) *JotError {
	seconds := math.Max(retryAfter.Seconds(), 0.1)
	return &JotError{
		Code:    ErrRateLimited,
		Status:  429,
		Message: fmt.Sprintf("rate limit exceeded; try again in %.1f seconds", seconds),
		Details: map[string]any{"retry_after_seconds": seconds},
	}
}

// NewValidation creates a 400 error for a field that failed screening.
// The reason is a fixed description, never an echo of the rejected input.
func NewValidation(field, reason string) *JotError {
	return &JotError{
		Code:    ErrValidation,
		Status:  400,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Details: map[string]any{"field": field, "reason": reason},
	}
}

// NewInvalidEnum creates a 400 error for an enum field with an unrecognized value.
func NewInvalidEnum(field string, allowed []string) *JotError {
	return &JotError{
		Code:    ErrInvalidEnumValue,
		Status:  400,
		Message: fmt.Sprintf("invalid value for %s; allowed: %v", field, allowed),
		Details: map[string]any{"field": field, "allowed": allowed},
	}
}

// NewPathViolation creates a 403 error for a path that resolves outside the
// permitted area. The message is deliberately generic: offending paths are
// never echoed back to the caller.
func NewPathViolation() *JotError {
	return &JotError{
		Code:    ErrPathViolation,
		Status:  403,
		Message: "path validation failed",
	}
}

// NewExtensionNotAllowed creates a 400 error for a disallowed file extension.
func NewExtensionNotAllowed(allowed []string) *JotError {
	return &JotError{
		Code:    ErrExtensionNotAllowed,
		Status:  400,
		Message: fmt.Sprintf("file extension not allowed; allowed: %v", allowed),
		Details: map[string]any{"allowed": allowed},
	}
}

// NewPathTooLong creates a 400 error when the resolved path exceeds the limit.
func NewPathTooLong(max int) *JotError {
	return &JotError{
		Code:    ErrPathTooLong,
		Status:  400,
		Message: fmt.Sprintf("path exceeds maximum length of %d characters", max),
		Details: map[string]any{"max_chars": max},
	}
}

// NewSizeExceeded creates a 413 error when a file exceeds the size ceiling.
func NewSizeExceeded(max, actual int64) *JotError {
	return &JotError{
		Code:    ErrSizeExceeded,
		Status:  413,
		Message: fmt.Sprintf("file exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewNotFound creates a 404 error for when no scratchpad exists.
func NewNotFound() *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "no scratchpad found; create one first",
	}
}

// NewAlreadyExists creates a 409 error for create collisions.
// The location is the workspace-relative path, already validated.
func NewAlreadyExists(location string) *JotError {
	return &JotError{
		Code:    ErrAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("scratchpad already exists at %s; pass overwrite to replace it", location),
		Details: map[string]any{"location": location},
	}
}

// NewIO creates a 500 error for filesystem failures.
// The message is generic (not leaking paths or OS error text); the original
// error is stored in Details for logging.
func NewIO(err error) *JotError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &JotError{
		Code:    ErrIO,
		Status:  500,
		Message: "a file system error occurred",
		Details: details,
	}
}

// Is checks if an error is a JotError with the given code.
// Wrapped errors are unwrapped along the way.
func Is(err error, code ErrorCode) bool {
	var jErr *JotError
	if stderrors.As(err, &jErr) {
		return jErr.Code == code
	}
	return false
}

// CodeOf returns the structured code of an error. Anything that is not a
// JotError counts as an IO failure.
func CodeOf(err error) ErrorCode {
	var jErr *JotError
	if stderrors.As(err, &jErr) {
		return jErr.Code
	}
	return ErrIO
}
