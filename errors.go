// Package pcaref structured error types for better error handling
package pcaref

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors (caller contract violations)
	ErrTypeInvalidArg ErrorType = iota
	// Execution order errors (operations called out of sequence)
	ErrTypeExecution
)

// PCAError represents a structured error with context
type PCAError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *PCAError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pcaref %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("pcaref %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *PCAError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	default:
		return "Unknown"
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &PCAError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution order error
func NewExecutionError(op string, message string) error {
	return &PCAError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
	}
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	if e, ok := err.(*PCAError); ok {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}

// IsExecutionError checks if an error is an execution order error
func IsExecutionError(err error) bool {
	if e, ok := err.(*PCAError); ok {
		return e.Type == ErrTypeExecution
	}
	return false
}
