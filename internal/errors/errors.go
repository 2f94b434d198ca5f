// Package errors provides structured error types and exit codes for unc.
package errors

import (
	"fmt"

	cerr "github.com/cockroachdb/errors"

	"github.com/incredibit/unc/pkg/unc"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = unc.ExitSuccess    // Every task succeeded
	ExitTaskFailure = unc.ExitFailure    // At least one task failed
	ExitUsageError  = unc.ExitUsageError // Bad arguments or invalid task catalog
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	// KindExecution: the child ran and exited non-zero.
	KindExecution ErrorKind = iota
	// KindNotFound: the named executable is not on the search path.
	KindNotFound
	// KindUnexpected: any other fault while spawning or managing the child.
	KindUnexpected
	// KindConfig: invalid arguments or task catalog.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindExecution:
		return "execution failure"
	case KindNotFound:
		return "not found"
	case KindUnexpected:
		return "unexpected fault"
	case KindConfig:
		return "config"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// UncError is the base error type for unc.
type UncError struct {
	Kind       ErrorKind
	Message    string
	Command    string // Shell command if applicable
	ExitStatus int    // Child exit status for KindExecution and shell-reported KindNotFound
	Cause      error  // Underlying error
}

func (e *UncError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("[%s] %s", e.Command, e.Message)
	}
	return e.Message
}

func (e *UncError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *UncError) ExitCode() int {
	if e.Kind == KindConfig {
		return ExitUsageError
	}
	return ExitTaskFailure
}

// ExecutionFailure creates an error for a child that exited with a non-zero status.
func ExecutionFailure(command string, status int) *UncError {
	return &UncError{
		Kind:       KindExecution,
		Command:    command,
		ExitStatus: status,
		Message:    fmt.Sprintf("exited with status %d", status),
	}
}

// NotFound creates an error for an executable missing from PATH.
func NotFound(command, name string, cause error) *UncError {
	e := &UncError{
		Kind:    KindNotFound,
		Command: command,
		Message: fmt.Sprintf("command not found: %s", name),
	}
	if cause != nil {
		e.Cause = cerr.WithStack(cause)
	}
	return e
}

// Unexpected wraps any other subprocess fault.
func Unexpected(command string, cause error) *UncError {
	msg := "unexpected fault"
	if cause != nil {
		msg = cause.Error()
	}
	return &UncError{
		Kind:    KindUnexpected,
		Command: command,
		Message: msg,
		Cause:   cerr.WithStack(cause),
	}
}

// Config creates a new configuration error.
func Config(message string) *UncError {
	return &UncError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *UncError {
	return Config(fmt.Sprintf(format, args...))
}

// WrapConfig wraps an error as a configuration error with additional context.
func WrapConfig(err error, message string) *UncError {
	return &UncError{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   cerr.Wrap(err, message),
	}
}

// KindOf reports the kind of the first UncError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ue *UncError
	if cerr.As(err, &ue) {
		return ue.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *UncError
	if cerr.As(err, &ue) {
		return ue.ExitCode()
	}
	return ExitTaskFailure
}
