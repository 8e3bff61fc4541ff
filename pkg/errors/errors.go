// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown            = "UNKNOWN_ERROR"
	CodeNoSolution         = "NO_SOLUTION"
	CodeAlreadyRelocated   = "ALREADY_RELOCATED"
	CodeDuplicateRoot      = "DUPLICATE_ROOT"
	CodeCrossDevice        = "CROSS_DEVICE"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeScanError          = "SCAN_ERROR"
	CodeExecuteError       = "EXECUTE_ERROR"
	CodeConfigError        = "CONFIG_ERROR"
	CodeStorageError       = "STORAGE_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrNoSolution         = New(CodeNoSolution, "no relocation plan satisfies the given roots")
	ErrAlreadyRelocated   = New(CodeAlreadyRelocated, "roots already satisfy the placement invariant")
	ErrDuplicateRoot      = New(CodeDuplicateRoot, "duplicate root path")
	ErrCrossDevice        = New(CodeCrossDevice, "path crosses a filesystem device boundary")
	ErrInvariantViolation = New(CodeInvariantViolation, "planner invariant violated")
	ErrScanError          = New(CodeScanError, "scan failed")
	ErrExecuteError       = New(CodeExecuteError, "execution failed")
	ErrConfigError        = New(CodeConfigError, "configuration error")
	ErrStorageError       = New(CodeStorageError, "storage error")
)

// IsNoSolution checks if the error signals a planning failure.
func IsNoSolution(err error) bool {
	return errors.Is(err, ErrNoSolution)
}

// IsAlreadyRelocated checks if the error signals the trivial no-op case.
func IsAlreadyRelocated(err error) bool {
	return errors.Is(err, ErrAlreadyRelocated)
}

// IsInvariantViolation checks if the error is a programming-error class
// failure (free-block underflow, move to current root, missing descriptor,
// or an inadmissible heuristic) rather than a user-facing condition.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
