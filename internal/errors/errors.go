package errors

import (
	"errors"
	"fmt"
)

// Exit codes for sb. Every failure sb detects on its own exits with
// ExitGeneralError; other non-zero codes only ever come from the attached
// process via ExitStatus.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// Kind classifies a SandboxError.
type Kind string

const (
	KindGeneral    Kind = "general"
	KindInvariant  Kind = "invariant"
	KindValidation Kind = "validation"
	KindConfig     Kind = "config"
	KindContainer  Kind = "container"
	KindExitStatus Kind = "exit-status"
)

// SandboxError is the base error type for sb
type SandboxError struct {
	Code    int
	Kind    Kind
	Message string
	Cause   error
}

func (e *SandboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SandboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SandboxError) ExitCode() int {
	return e.Code
}

// New creates a new SandboxError
func New(code int, message string) *SandboxError {
	return &SandboxError{
		Code:    code,
		Kind:    KindGeneral,
		Message: message,
	}
}

// Wrap wraps an existing error with a SandboxError
func Wrap(code int, message string, cause error) *SandboxError {
	return &SandboxError{
		Code:    code,
		Kind:    KindGeneral,
		Message: message,
		Cause:   cause,
	}
}

func withKind(e *SandboxError, kind Kind) *SandboxError {
	e.Kind = kind
	return e
}

// Common error constructors

// InvariantViolation reports a value sb constructed itself that failed its own
// validity check. It indicates a bug, not a user error.
func InvariantViolation(message string, cause error) *SandboxError {
	return withKind(Wrap(ExitGeneralError, message, cause), KindInvariant)
}

// InvalidArgument returns an error for a forwarded argument that was refused
func InvalidArgument(cause error) *SandboxError {
	return withKind(Wrap(ExitGeneralError, "invalid argument", cause), KindValidation)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *SandboxError {
	return withKind(New(ExitGeneralError, message), KindValidation)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SandboxError {
	return withKind(Wrap(ExitGeneralError, message, cause), KindConfig)
}

// ContainerFailed returns an error for container operations
func ContainerFailed(op string, cause error) *SandboxError {
	return withKind(Wrap(ExitGeneralError, fmt.Sprintf("container %s failed", op), cause), KindContainer)
}

// ExitStatus carries the exit code of the attached process. main exits with
// exactly this code and prints nothing.
func ExitStatus(code int) *SandboxError {
	return withKind(New(code, fmt.Sprintf("exit status %d", code)), KindExitStatus)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var sbErr *SandboxError
	if errors.As(err, &sbErr) {
		return sbErr.ExitCode()
	}
	return ExitGeneralError
}

// KindOf returns the Kind of the first SandboxError in err's chain, or
// KindGeneral.
func KindOf(err error) Kind {
	var sbErr *SandboxError
	if errors.As(err, &sbErr) {
		return sbErr.Kind
	}
	return KindGeneral
}

// IsExitStatus reports whether err only relays the attached process's status.
func IsExitStatus(err error) bool {
	return KindOf(err) == KindExitStatus
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
