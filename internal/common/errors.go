package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure classes for one validation run. Per-document failures are recorded
// in the verdict, never propagated; only a run-wide backend outage escapes the
// engine's entry point.
var (
	// ErrDecode marks file bytes that cannot be read as the declared media type.
	ErrDecode = errors.New("document could not be decoded")
	// ErrBackendUnavailable marks a failed extraction/classification backend call
	// (network, auth, quota, timeout).
	ErrBackendUnavailable = errors.New("extraction backend unavailable")
	// ErrInsufficientData marks an extraction whose fields fall below the
	// sufficiency predicate for its document kind.
	ErrInsufficientData = errors.New("extracted data insufficient")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// DecodeErrorf wraps ErrDecode with document context.
func DecodeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrDecode)...)
}

// BackendErrorf wraps ErrBackendUnavailable with call context.
func BackendErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrBackendUnavailable)...)
}
