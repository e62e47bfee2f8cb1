// Package errors provides structured error types for ermview.
//
// This package defines error codes and types that enable:
//   - One reportable error at the load boundary (see [UserMessage])
//   - Distinguishable failure kinds inside the decoder for precise tests
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the load pipeline's failure taxonomy:
//   - FILE_NOT_FOUND, IO_ERROR: the diagram file could not be read
//   - MALFORMED_XML: the bytes are not well-formed XML
//   - MISSING_FIELD, INVALID_VALUE, UNRESOLVED_GROUP, INVALID_SCHEMA:
//     the document is well-formed but does not fit the diagram schema
//   - INVALID_*: command-line input validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "table[2]: missing <physical_name>")
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle schema error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// I/O errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND" // diagram path does not exist
	ErrCodeIO           Code = "IO_ERROR"       // open or read failed for another reason

	// Decode errors
	ErrCodeMalformedXML Code = "MALFORMED_XML" // bytes are not well-formed XML

	// Schema errors
	ErrCodeMissingField    Code = "MISSING_FIELD"    // required tag absent or empty
	ErrCodeInvalidValue    Code = "INVALID_VALUE"    // tag text does not fit its type
	ErrCodeUnresolvedGroup Code = "UNRESOLVED_GROUP" // column group reference without a definition
	ErrCodeInvalidSchema   Code = "INVALID_SCHEMA"   // wrong root element or colliding group names

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // bad config file or flag value
	ErrCodeInvalidPath   Code = "INVALID_PATH"   // path fails ValidateDiagramPath
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // unsupported output format
	ErrCodeNotFound      Code = "NOT_FOUND"      // named table is not in the diagram

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

// IsSchema reports whether err is one of the schema error kinds: the input
// was well-formed XML but did not describe a valid diagram.
func IsSchema(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingField, ErrCodeInvalidValue, ErrCodeUnresolvedGroup, ErrCodeInvalidSchema:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
