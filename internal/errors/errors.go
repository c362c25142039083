// Package errors defines coded, user-facing errors shared by the API and CLI.
//
// Two failure philosophies coexist in micmac and must stay distinct: analytic
// computations degrade silently (no result, not an error) because degenerate
// input is routine while a matrix is being edited, whereas validation and
// persistence failures are reported with a stable code and a message that
// names the offending position so the caller can correct the input and retry.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all reported failure modes
type ErrorCode string

const (
	// NotFound indicates a referenced scale set or project does not exist
	NotFound ErrorCode = "NOT_FOUND"
	// ValidationFailed indicates a request payload violated a structural rule
	ValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ImportInvalid indicates an uploaded dataset failed structural validation
	ImportInvalid ErrorCode = "IMPORT_INVALID"
	// ScaleViolation indicates a matrix cell fell outside the governing scale
	ScaleViolation ErrorCode = "SCALE_VIOLATION"
	// ScaleInUse indicates a scale set cannot be deleted while projects reference it
	ScaleInUse ErrorCode = "SCALE_IN_USE"
	// MatrixIncomplete indicates a stored matrix does not cover all variable pairs
	MatrixIncomplete ErrorCode = "MATRIX_INCOMPLETE"
	// NoResult indicates the analytic engine had no signal to work with
	NoResult ErrorCode = "NO_RESULT"
	// InternalError indicates an unexpected failure
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error is a coded error carrying an optional cause and free-form details.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a coded error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the error code from err, or InternalError when err carries none.
func CodeOf(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
