// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// NewTestEnv installs an app.App backed by a mock runtime, a mock file
// system and a FakePrompter as app.Default, and captures user output:
//
//	env := testutil.NewTestEnv(t)
//	env.AddSandbox(runtime.StatusStopped)
//	// run a command
//	env.Runtime.Methods() // ["ListNames", "ListNames", "Start", "Attach"]
//	env.Stdout.String()
//
// The default is restored when the test finishes.
//
// # Fixtures
//
// Config fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml
//	fixtures/project.env
//
// Helper functions parse them into typed config values:
//
//	cfg, err := testutil.ValidUserConfig()
//	env, err := testutil.ProjectEnv()
package testutil
