// Package runtime provides a unified interface for container runtimes.
//
// Supported runtimes:
//   - docker: the Docker CLI
//   - podman: the Podman CLI, driven with the same subcommands
//
// Runtime selection honours a configured preference, otherwise docker is
// preferred over podman. Use New to get the detected runtime, or construct a
// DockerRuntime with a system.MockExecutor for testing.
//
// # Runtime Interface
//
// The Runtime interface covers the operations sb performs:
//   - ListNames: the `ps` / `ps -a` listings used to probe sandbox state
//   - Start, Stop, Remove, RemoveImage, RemoveVolume: container lifecycle
//   - ComposeUp: create a sandbox from a generated compose file
//   - Attach: run a command inside a container with the terminal attached
//
// Every command line is logged at debug level.
//
// # Mock Runtime
//
// For testing, use NewMockRuntime() to create a mock implementation that
// simulates container state and records calls for verification.
package runtime
