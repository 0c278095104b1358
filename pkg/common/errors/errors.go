package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Common error types used across the rxflow library

var (
	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsubscribed indicates that the subscription was released before
	// the stream reached a terminal notification
	ErrUnsubscribed = errors.New("subscription released")

	// ErrTeardown indicates that one or more cleanup actions failed
	ErrTeardown = errors.New("teardown failed")

	// ErrPanic indicates that user code panicked while handling a notification
	ErrPanic = errors.New("recovered panic")

	// ErrNilError replaces a nil error passed to an Error notification
	ErrNilError = errors.New("error notification without an error")
)

// ValidationError describes a rejected argument or configuration value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same instance.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidConfiguration so callers can match with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// OperationError wraps a failure of a named operation inside a module.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError for the given cause.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches free-form context and returns the same instance.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// PanicError carries a value recovered from a panic together with the stack
// of the goroutine that panicked.
type PanicError struct {
	Value interface{}
	Stack []byte
}

// NewPanicError captures the current stack. Call it from the deferred
// function that recovered v.
func NewPanicError(v interface{}) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// Unwrap exposes ErrPanic and, when the panic value was itself an error, that
// error too.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanic, err}
	}
	return []error{ErrPanic}
}

// TeardownError reports the first fault raised while releasing a
// subscription and how many cleanup actions failed in total.
type TeardownError struct {
	First error
	Count int
}

func (e *TeardownError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("teardown failed: %v (and %d more)", e.First, e.Count-1)
	}
	return fmt.Sprintf("teardown failed: %v", e.First)
}

func (e *TeardownError) Unwrap() []error {
	return []error{ErrTeardown, e.First}
}

// IsUnsubscribed reports whether err was caused by releasing a subscription
// before the stream terminated.
func IsUnsubscribed(err error) bool {
	return errors.Is(err, ErrUnsubscribed)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsPanic reports whether err carries a recovered panic.
func IsPanic(err error) bool {
	return errors.Is(err, ErrPanic)
}
