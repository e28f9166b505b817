// Package errors provides coded errors shared by the CLI and the render
// server. The code decides the exit status and the HTTP status; the
// messages, joined along the wrap chain, are what users read.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q", p)
//	if errors.Is(err, errors.ErrCodeInvalidPosition) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidChart, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPosition   Code = "INVALID_POSITION"
	ErrCodeInvalidAxis       Code = "INVALID_AXIS"
	ErrCodeInvalidScale      Code = "INVALID_SCALE"
	ErrCodeInvalidChart      Code = "INVALID_CHART"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeInvalidColor      Code = "INVALID_COLOR"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeAxisNotFound Code = "AXIS_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// UserMessage renders err for people: the message of every layer of the
// chain joined by ": ", without codes. Config errors nest (file, baseline
// index, field), so reporting only the outermost layer would drop the cause.
//
//	chart.toml: baseline 2: invalid position: "top" (must be 'left' or 'right')
func UserMessage(err error) string {
	var parts []string
	for err != nil {
		next := errors.Unwrap(err)
		var msg string
		switch e := err.(type) {
		case *Error:
			msg = e.Message
		default:
			msg = err.Error()
			if next == nil {
				break
			}
			// A "context: %w" wrapper: keep only its own prefix.
			prefix, ok := strings.CutSuffix(msg, ": "+next.Error())
			if !ok {
				return strings.Join(append(parts, msg), ": ")
			}
			msg = prefix
		}
		if msg != "" {
			parts = append(parts, msg)
		}
		err = next
	}
	return strings.Join(parts, ": ")
}

// IsClientError reports whether err was caused by bad input rather than by
// the application itself.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPosition,
		ErrCodeInvalidAxis, ErrCodeInvalidScale, ErrCodeInvalidChart,
		ErrCodeInvalidExpression, ErrCodeInvalidColor,
		ErrCodeNotFound, ErrCodeAxisNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}
