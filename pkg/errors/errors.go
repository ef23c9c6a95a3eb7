package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Manifest errors
	ErrManifestLoad      ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse     ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid   ErrorCode = "MANIFEST_INVALID"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Manifest phase errors
	ErrMissingDependency ErrorCode = "MISSING_DEPENDENCY"
	ErrHookFailed        ErrorCode = "HOOK_FAILED"
	ErrConditionFailed   ErrorCode = "CONDITION_FAILED"

	// Per-item errors
	ErrMissingSource     ErrorCode = "MISSING_SOURCE"
	ErrFSConflict        ErrorCode = "FS_CONFLICT"
	ErrFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrRemoveFailed      ErrorCode = "REMOVE_FAILED"
	ErrDirCreate         ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate     ErrorCode = "SYMLINK_CREATE"
	ErrUnsafeDestination ErrorCode = "UNSAFE_DESTINATION"
)

// CuepineError represents a structured error with code and details
type CuepineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CuepineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CuepineError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a CuepineError with the same code
func (e *CuepineError) Is(target error) bool {
	var targetErr *CuepineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CuepineError with the given code and message
func New(code ErrorCode, message string) *CuepineError {
	return &CuepineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CuepineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CuepineError {
	return &CuepineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CuepineError
func Wrap(err error, code ErrorCode, message string) *CuepineError {
	if err == nil {
		return nil
	}
	return &CuepineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CuepineError {
	if err == nil {
		return nil
	}
	return &CuepineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CuepineError) WithDetail(key string, value interface{}) *CuepineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *CuepineError) WithDetails(details map[string]interface{}) *CuepineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cpErr *CuepineError
	if errors.As(err, &cpErr) {
		return cpErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CuepineError
func GetErrorCode(err error) ErrorCode {
	var cpErr *CuepineError
	if errors.As(err, &cpErr) {
		return cpErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CuepineError
func GetErrorDetails(err error) map[string]interface{} {
	var cpErr *CuepineError
	if errors.As(err, &cpErr) {
		return cpErr.Details
	}
	return nil
}
