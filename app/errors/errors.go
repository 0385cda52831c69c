package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure independently of its message
type ErrorCode string

const (
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Malformed value passed to a setter. Always raised immediately.
	ErrValidation ErrorCode = "VALIDATION"
	// Mandatory field missing at render time. Raised or collected depending on the renderer mode.
	ErrRequiredField ErrorCode = "REQUIRED_FIELD"
	// Registry or resolver could not produce an extension.
	ErrResolution ErrorCode = "RESOLUTION"
	// Capability dispatch exhausted every attached extension.
	ErrUnresolvedOperation ErrorCode = "UNRESOLVED_OPERATION"
	// An extension declines an operation it does not implement.
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	ErrEncoding ErrorCode = "ENCODING"
	ErrConfig   ErrorCode = "CONFIG"
)

// FeedError is a structured error with a stable code and optional details
type FeedError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *FeedError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a FeedError with the same code
func (e *FeedError) Is(target error) bool {
	var targetErr *FeedError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func New(code ErrorCode, message string) *FeedError {
	return &FeedError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func Newf(code ErrorCode, format string, args ...interface{}) *FeedError {
	return &FeedError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap returns nil when err is nil
func Wrap(err error, code ErrorCode, message string) *FeedError {
	if err == nil {
		return nil
	}
	return &FeedError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FeedError {
	if err == nil {
		return nil
	}
	return &FeedError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

func (e *FeedError) WithDetail(key string, value interface{}) *FeedError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if err, or anything it wraps, carries the given code
func IsErrorCode(err error, code ErrorCode) bool {
	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr.Code == code
	}
	return false
}

// GetErrorCode returns ErrUnknown for errors that are not FeedErrors
func GetErrorCode(err error) ErrorCode {
	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr.Code
	}
	return ErrUnknown
}

func GetErrorDetails(err error) map[string]interface{} {
	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr.Details
	}
	return nil
}

// Validation builds the error returned by setters for malformed input
func Validation(field, reason string) *FeedError {
	return Newf(ErrValidation, "invalid parameter %q: %s", field, reason).WithDetail("field", field)
}

// NotImplemented is returned by an augmenter that does not handle op
func NotImplemented(op string) *FeedError {
	return Newf(ErrNotImplemented, "operation %s is not implemented", op).WithDetail("operation", op)
}
