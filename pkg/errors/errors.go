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

	// Setup errors abort a run before any walk begins
	ErrRootNotFound   ErrorCode = "ROOT_NOT_FOUND"
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"

	// Classification errors
	ErrNotSymlink ErrorCode = "NOT_SYMLINK"
	ErrClassify   ErrorCode = "CLASSIFY"

	// Precondition failures
	ErrDangling       ErrorCode = "DANGLING"
	ErrIsDirectory    ErrorCode = "IS_DIRECTORY"
	ErrNotDirectory   ErrorCode = "NOT_DIRECTORY"
	ErrCrossDevice    ErrorCode = "CROSS_DEVICE"
	ErrTargetExists   ErrorCode = "TARGET_EXISTS"
	ErrNoRelativePath ErrorCode = "NO_RELATIVE_PATH"
	ErrUnresolvable   ErrorCode = "UNRESOLVABLE"

	// Mutation failures
	ErrRemove   ErrorCode = "REMOVE"
	ErrCreate   ErrorCode = "CREATE"
	ErrMutation ErrorCode = "MUTATION"

	// Collaborator failures
	ErrMirror ErrorCode = "MIRROR"
	ErrExec   ErrorCode = "EXEC"
)

// SlinkyError represents a structured error with code and details
type SlinkyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SlinkyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SlinkyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SlinkyError) Is(target error) bool {
	var targetErr *SlinkyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SlinkyError with the given code and message
func New(code ErrorCode, message string) *SlinkyError {
	return &SlinkyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SlinkyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SlinkyError {
	return &SlinkyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SlinkyError
func Wrap(err error, code ErrorCode, message string) *SlinkyError {
	if err == nil {
		return nil
	}
	return &SlinkyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SlinkyError {
	if err == nil {
		return nil
	}
	return &SlinkyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SlinkyError) WithDetail(key string, value interface{}) *SlinkyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SlinkyError
func GetErrorCode(err error) ErrorCode {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SlinkyError
func GetErrorDetails(err error) map[string]interface{} {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Details
	}
	return nil
}

// Reason returns the human-readable part of err without code prefixes.
// Wrapped causes are appended after a colon.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var slinkyErr *SlinkyError
	if !errors.As(err, &slinkyErr) {
		return err.Error()
	}
	if slinkyErr.Wrapped != nil {
		return slinkyErr.Message + ": " + Reason(slinkyErr.Wrapped)
	}
	return slinkyErr.Message
}
