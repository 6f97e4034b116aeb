// Package errors provides the unified error type for remotekit.
// It implements structured errors with machine-readable codes and
// retryable detection, so callers can branch on kind instead of message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type for this module.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
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

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the error code carried by err, or empty when err is not an
// AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsTimeout reports whether err carries the timeout code.
func IsTimeout(err error) bool {
	return CodeOf(err) == ErrCodeTimeout
}

// IsRetryable reports whether err carries a retryable code.
func IsRetryable(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

// --- Common Error Constructors ---

// InvalidProxy creates a new AppError for a value that cannot back a proxy.
func InvalidProxy(reason string, target any) *AppError {
	return &AppError{
		Code: ErrCodeInvalidProxy, Message: fmt.Sprintf("invalid proxy target: %s", reason),
		Retryable: false,
		Details:   map[string]any{"target": fmt.Sprintf("%T", target)},
	}
}

// InvalidConfig creates a new AppError for invalid construction arguments.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("invalid configuration: %s", reason),
		Retryable: false, Details: details,
	}
}

// AttrDenied creates a new AppError for access outside a view's allowlist.
func AttrDenied(attr string) *AppError {
	return &AppError{
		Code: ErrCodeAttrDenied, Message: fmt.Sprintf("attribute %q is not exposed by this view", attr),
		Retryable: false,
		Details:   map[string]any{"attribute": attr},
	}
}

// Timeout creates a new AppError for a pending result that expired.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "the result did not arrive within the allowed time",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// ConnectionFailed creates a new AppError for an unrecoverable transport failure.
func ConnectionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "the connection failed while serving",
		Retryable: true, Cause: cause,
	}
}

// ServingStopped creates a new AppError for a worker in its terminal state.
func ServingStopped() *AppError {
	return &AppError{
		Code: ErrCodeServingStopped, Message: "the background serving worker has stopped",
		Retryable: false,
	}
}

// Remote creates a new AppError wrapping an error raised by the remote side.
func Remote(cause error) *AppError {
	return &AppError{
		Code: ErrCodeRemote, Message: "the remote call raised an error",
		Retryable: false, Cause: cause,
	}
}
