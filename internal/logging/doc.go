// Package logging provides logging utilities for sb.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings.
// Without --verbose only warnings and errors reach stderr:
//
//	logging.Debug("runtime command", "cmd", line)
//	logging.Warn("probe failed", "name", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating new sandbox container for bash session...")
//	logging.UserSuccess("Container removed")
//	logging.UserWarning("Failed to remove container")
//	logging.UserError("Invalid argument - %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
