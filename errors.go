package specreport

import (
	"errors"
	"fmt"
)

// ProtocolError reports a violation of the event-ordering contract between
// the driving engine and the reporter, such as a terminal example event with
// no matching start, or a group depth that jumps forward by more than one.
// These are programming-contract errors: a silently-wrong duration or an
// unbalanced document would corrupt the report.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Message)
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(format string, args ...any) *ProtocolError {
	return &ProtocolError{Message: fmt.Sprintf(format, args...)}
}

// IsProtocolError checks if the error is or wraps a ProtocolError
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return err != nil && errors.As(err, &protoErr)
}

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors, unwritable output, etc.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// TestFailureError represents a run that finished with failing examples (exit code 1)
type TestFailureError struct {
	Message string
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("test failure: %s", e.Message)
}

// NewTestFailureError creates a new TestFailureError
func NewTestFailureError(message string) *TestFailureError {
	return &TestFailureError{Message: message}
}

// IsTestFailureError checks if the error is or wraps a TestFailureError
func IsTestFailureError(err error) bool {
	var testErr *TestFailureError
	return err != nil && errors.As(err, &testErr)
}
