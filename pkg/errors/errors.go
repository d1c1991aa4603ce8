// Package errors provides structured error types for ghprofile.
//
// Domain failures that callers need to tell apart (a malformed profile page,
// an unparseable timestamp, a ratio with nothing to divide by) carry a
// machine-readable [Code]. Transport failures live in the integrations
// package as sentinel errors; this package covers everything that happens
// after a response has arrived.
//
// # Error Codes
//
//   - INVALID_*: input rejected before any request is made
//   - PARSE_ERROR: a response arrived but did not have the expected shape
//   - UNDEFINED_*: an aggregate has no defined value for the data at hand
//   - INTERNAL_ERROR: unexpected internal failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "contributions heading %q is not numeric", text)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // mark the field unavailable
//	}
//
//	err := errors.Wrap(errors.ErrCodeParse, cause, "parse created_at %q", raw)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUsername Code = "INVALID_USERNAME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Response shape errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Degenerate aggregates
	ErrCodeUndefinedRatio Code = "UNDEFINED_RATIO"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
