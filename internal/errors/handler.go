package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError prints a user-facing description of a sweep failure and
// maps it to a process exit code.
//
// Parameters:
//   - err: The error returned by the sweep, or nil.
//   - elapsed: How long the sweep ran before failing.
//   - timeout: The configured timeout, used to describe deadline errors.
//   - out: Destination for the message.
//   - colors: Optional color provider.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleRunError(err error, elapsed, timeout time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var (
		cfgErr     ConfigError
		fieldErr   ValidationError
		evalErr    EvaluationError
		timeoutErr TimeoutError
	)
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %s\n", red, reset, cfgErr.Message)
		return ExitErrorConfig
	case errors.As(err, &fieldErr):
		fmt.Fprintf(out, "%sConfiguration error:%s --%s %s\n", red, reset, fieldErr.Field, fieldErr.Message)
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		if timeoutErr.Limit == 0 {
			timeoutErr = TimeoutError{Operation: "sweep", Limit: timeout}
		}
		fmt.Fprintf(out, "%sStatus: Failure (Timeout).%s %s (ran %s)\n", red, reset, timeoutErr.Error(), elapsed.Round(time.Millisecond))
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s after %s\n", yellow, reset, elapsed.Round(time.Millisecond))
		return ExitErrorCanceled
	case errors.As(err, &evalErr):
		fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", red, reset, evalErr)
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", red, reset, err)
		return ExitErrorGeneric
	}
}
