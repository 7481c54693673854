package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic or evaluation error.
	ExitErrorTimeout  = 2   // Indicates the sweep timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a configuration error, such as invalid flags, an
// empty axis, or a function whose parameters do not match the axis names.
// It is raised before any evaluation starts.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// BindingError reports a mismatch between the parameters a function
// declares and the axis names of a sweep. It is a configuration error.
func BindingError(missing, unexpected []string) error {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing axes for parameters "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		parts = append(parts, "no parameter for axes "+strings.Join(unexpected, ", "))
	}
	return ConfigError{Message: "function parameters do not match axis names: " + strings.Join(parts, "; ")}
}

// EvaluationError encapsulates a failure of the swept function for one
// combination while preserving the original cause.
type EvaluationError struct {
	// Index is the position of the failing combination in the parameter space.
	Index int
	// Combination is a printable form of the failing combination.
	Combination string
	// Cause is the underlying error returned (or panic raised) by the function.
	Cause error
}

// Error returns a message naming the failing combination and the cause.
func (e EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed for combination #%d %s: %v", e.Index, e.Combination, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents a sweep timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsConfigError reports whether err carries a ConfigError or a
// ValidationError in its chain.
func IsConfigError(err error) bool {
	var (
		cfgErr   ConfigError
		fieldErr ValidationError
	)
	return errors.As(err, &cfgErr) || errors.As(err, &fieldErr)
}
