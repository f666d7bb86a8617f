// Package app provides the application context for sb.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # Creating an App
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithRuntime(mockRuntime),
//	    app.WithFS(mockFS),
//	    app.WithWorkDir(dir),
//	    app.WithUserConfigPath(""),
//	)
//
// # Lazy Runtime Detection
//
// The container runtime is resolved on the first call to GetRuntime, from
// the runtime command in the merged configuration. Commands that never touch
// a container do not require docker or podman to be installed.
//
// # Controller
//
// Controller wires the working directory's identity, the runtime, a compose
// creator and the configured resource limits into a sandbox.Controller.
package app
