package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type returned by drivers and the coordinator.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
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
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Configuration creates an error for an invalid declaration or setting.
func Configuration(format string, args ...any) *AppError {
	return New(ErrCodeConfiguration, fmt.Sprintf(format, args...))
}

// UndeclaredTarget creates an error for a target that has no declared type.
func UndeclaredTarget(driver, name string) *AppError {
	return Configuration("%s target %q has no declared type", driver, name).
		WithDetail("driver", driver).
		WithDetail("target", name)
}

// Backend wraps a failed backend call. A nil cause yields nil.
func Backend(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeBackend,
		Message: op,
		Cause:   cause,
		Details: map[string]any{"operation": op},
	}
}

// BackendFailure creates a backend error that has no underlying client error,
// for replies the backend reports as unsuccessful.
func BackendFailure(op, reason string) *AppError {
	return New(ErrCodeBackend, fmt.Sprintf("%s: %s", op, reason)).WithDetail("operation", op)
}

// InvalidFixture creates an error for a payload at index that cannot be
// written to target.
func InvalidFixture(target string, index int, reason string) *AppError {
	return New(ErrCodeInvalidFixture, fmt.Sprintf("fixture %d for %q: %s", index, target, reason)).
		WithDetail("target", target).
		WithDetail("index", index)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return CodeOf(err) == ErrCodeConfiguration }

// IsBackend reports whether err is a backend error.
func IsBackend(err error) bool { return CodeOf(err) == ErrCodeBackend }

// IsInvalidFixture reports whether err is an invalid fixture error.
func IsInvalidFixture(err error) bool { return CodeOf(err) == ErrCodeInvalidFixture }
