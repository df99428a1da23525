// Package errors provides typed errors for the application
package errors

import "errors"

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeConnectivity
	ErrorTypeInternal
)

// String returns the error type name used in logs and metric labels
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeConnectivity:
		return "connectivity"
	default:
		return "internal"
	}
}

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents a local validation failure
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// ConnectivityError is returned when a remote provider cannot be reached.
// The message names the stage that failed.
type ConnectivityError struct {
	baseError
	cause error
}

// NewConnectivityError creates a new ConnectivityError
func NewConnectivityError(msg string, cause error) *ConnectivityError {
	return &ConnectivityError{baseError: baseError{msg: msg}, cause: cause}
}

// Unwrap returns the underlying transport error
func (e *ConnectivityError) Unwrap() error {
	return e.cause
}

// InternalError represents an unexpected internal failure
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConnectivityError checks if error is a ConnectivityError
func IsConnectivityError(err error) bool {
	var target *ConnectivityError
	return errors.As(err, &target)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}

// TypeOf classifies err into one of the error types
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsConnectivityError(err):
		return ErrorTypeConnectivity
	default:
		return ErrorTypeInternal
	}
}
