// Package errors provides typed errors with exit codes for sb.
//
// # Error Types
//
// SandboxError is the base error type that wraps an error with an exit code
// and a kind:
//
//	type SandboxError struct {
//	    Code    int    // Exit code
//	    Kind    Kind   // invariant, validation, config, container, exit-status
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// sb itself only ever fails with ExitGeneralError (1). Any other non-zero
// code is the exit code of the process attached inside the sandbox, relayed
// through ExitStatus:
//
//	ExitSuccess      = 0
//	ExitGeneralError = 1
//
// # Error Constructors
//
//	errors.InvariantViolation("generated identity is invalid", err)
//	errors.InvalidArgument(rejection)
//	errors.ConfigError("invalid SB_MEMORY", err)
//	errors.ContainerFailed("start", err)
//	errors.ExitStatus(code)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
