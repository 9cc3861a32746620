package readability

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/postcollect/types"
)

// ErrorType defines the category of an error
type ErrorType string

// Error types
const (
	ParseError      ErrorType = "parse"
	ExtractionError ErrorType = "extraction"
	ValidationError ErrorType = "validation"
)

// ErrNoDocument is the public sentinel for input with nothing to parse.
var ErrNoDocument = types.ErrNoDocument

// OpError records the category and the operation that failed.
type OpError struct {
	Type    ErrorType
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s:%s] %v", e.Type, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Op, e.Message, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// WrapError wraps an error with context information
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}
	return &OpError{Type: errorType, Op: funcName, Message: message, Err: err}
}

// WrapParseError wraps a parsing error
func WrapParseError(err error, funcName, message string) error {
	return WrapError(err, ParseError, funcName, message)
}

// WrapExtractionError wraps an extraction error
func WrapExtractionError(err error, funcName, message string) error {
	return WrapError(err, ExtractionError, funcName, message)
}

// WrapValidationError wraps a validation error
func WrapValidationError(err error, funcName, message string) error {
	return WrapError(err, ValidationError, funcName, message)
}

// IsErrorType reports whether any error in err's chain is an *OpError of
// the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var op *OpError
	for err != nil {
		if !errors.As(err, &op) {
			return false
		}
		if op.Type == errorType {
			return true
		}
		err = op.Err
	}
	return false
}

// IsParseError returns true if the error is a parse error
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}

// IsExtractionError returns true if the error is an extraction error
func IsExtractionError(err error) bool {
	return IsErrorType(err, ExtractionError)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return IsErrorType(err, ValidationError)
}
