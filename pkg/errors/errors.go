package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeMissingSource   ErrorType = "missing_source"
	ErrorTypeMalformedRecord ErrorType = "malformed_record"
	ErrorTypeSearch          ErrorType = "search"
	ErrorTypeDownload        ErrorType = "download"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeRateLimit       ErrorType = "rate_limit"
	ErrorTypeParsing         ErrorType = "parsing"
	ErrorTypeStorage         ErrorType = "storage"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// Error carries a failure classification together with the HTTP status code
// (0 when no response was received) and the underlying cause.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given type
func New(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given type around err
func Wrap(t ErrorType, err error, msg string) *Error {
	message := msg
	if err != nil {
		message = fmt.Sprintf("%s: %v", msg, err)
	}
	return &Error{Type: t, Message: message, Err: err}
}

// MissingSource reports that the pairs file does not exist
func MissingSource(path string) *Error {
	return &Error{
		Type:    ErrorTypeMissingSource,
		Message: fmt.Sprintf("source file %q does not exist", path),
	}
}

// MalformedRecord reports an input record that cannot be turned into a work item
func MalformedRecord(index int, reason string) *Error {
	return &Error{
		Type:    ErrorTypeMalformedRecord,
		Message: fmt.Sprintf("record %d: %s", index, reason),
	}
}

// TypeOf returns the ErrorType of the first *Error in err's chain
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err's chain contains an *Error of type t
func IsType(err error, t ErrorType) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}

// IsFatal reports whether an error type aborts the batch: the pairs file is
// missing, malformed, or cannot be read or written. Search and download
// failures are absorbed by the component that produced them.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeMissingSource, ErrorTypeMalformedRecord, ErrorTypeStorage:
		return true
	default:
		return false
	}
}

// ClassifyStatusCode maps an HTTP status code to an error type
func ClassifyStatusCode(statusCode int) ErrorType {
	switch {
	case statusCode == 0:
		return ErrorTypeNetwork
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeNetwork
	default:
		return ErrorTypeUnknown
	}
}
