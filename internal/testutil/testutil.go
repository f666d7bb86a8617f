// Package testutil provides test utilities for command tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/sb/internal/app"
	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/identity"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/system"
)

// Prompt is one confirmation FakePrompter was asked for.
type Prompt struct {
	Warning  string
	Question string
}

// FakePrompter answers every confirmation with Answer.
type FakePrompter struct {
	Answer bool
	Err    error
	Asked  []Prompt
}

// Confirm records the prompt and returns the canned answer.
func (p *FakePrompter) Confirm(warning, question string) (bool, error) {
	p.Asked = append(p.Asked, Prompt{Warning: warning, Question: question})
	return p.Answer, p.Err
}

// TestEnv holds the test environment
type TestEnv struct {
	T              *testing.T
	WorkDir        string
	UserConfigPath string
	Runtime        *runtime.MockRuntime
	FS             *system.MockFS
	Executor       *system.MockExecutor
	Prompter       *FakePrompter
	Stdout         *bytes.Buffer
	Stderr         *bytes.Buffer
	App            *app.App
	cleanup        func()
}

// NewTestEnv creates a new test environment with a mock runtime, a temporary
// working directory and captured user output. Environment overrides are
// cleared for the duration of the test.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	for _, key := range []string{config.EnvCPUs, config.EnvMemory, config.EnvRuntime} {
		t.Setenv(key, "")
	}

	tmpDir := t.TempDir()
	workDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}

	mockRuntime := runtime.NewMockRuntime()
	mockFS := system.NewMockFS()
	mockExec := system.NewMockExecutor()
	prompter := &FakePrompter{}
	userConfigPath := filepath.Join(tmpDir, "config", "sb", config.UserConfigFile)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	logging.SetUserOutput(stdout, stderr)

	testApp := app.New(
		app.WithRuntime(mockRuntime),
		app.WithFS(mockFS),
		app.WithExecutor(mockExec),
		app.WithPrompter(prompter),
		app.WithUserConfigPath(userConfigPath),
		app.WithWorkDir(workDir),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:              t,
		WorkDir:        workDir,
		UserConfigPath: userConfigPath,
		Runtime:        mockRuntime,
		FS:             mockFS,
		Executor:       mockExec,
		Prompter:       prompter,
		Stdout:         stdout,
		Stderr:         stderr,
		App:            testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
			logging.SetUserOutput(nil, nil)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default and user output
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// Identity returns the sandbox identity of the work dir
func (e *TestEnv) Identity() identity.Identity {
	e.T.Helper()

	id, err := identity.Resolve(e.WorkDir)
	if err != nil {
		e.T.Fatalf("Failed to resolve identity: %v", err)
	}
	return id
}

// AddSandbox registers the work dir's sandbox with the mock runtime
func (e *TestEnv) AddSandbox(status runtime.ContainerStatus) {
	e.Runtime.AddContainer(e.Identity().String(), status)
}

// AddArtifacts registers the fixed-name container, image and volume that
// clean targets
func (e *TestEnv) AddArtifacts(status runtime.ContainerStatus) {
	e.Runtime.AddContainer(config.ContainerName, status)
	e.Runtime.AddImage(config.ImageName)
	e.Runtime.AddVolume(config.VolumeName)
}

// WriteUserConfig writes the user TOML config file
func (e *TestEnv) WriteUserConfig(content string) {
	e.T.Helper()
	e.writeFile(e.UserConfigPath, content)
}

// WriteUserConfigFixture copies a fixture into the user config file
func (e *TestEnv) WriteUserConfigFixture(name string) {
	e.T.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	e.writeFile(e.UserConfigPath, string(data))
}

// WriteProjectEnv writes the work dir's project env file
func (e *TestEnv) WriteProjectEnv(content string) {
	e.T.Helper()
	e.writeFile(config.ProjectEnvPath(e.WorkDir), content)
}

func (e *TestEnv) writeFile(path, content string) {
	e.T.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ComposeFile returns the compose file written for the work dir's sandbox,
// if any
func (e *TestEnv) ComposeFile() (string, bool) {
	name := ".docker-compose-" + e.Identity().String() + ".yml"
	data, ok := e.FS.GetFile(filepath.Join(e.WorkDir, config.ProjectDir, name))
	return string(data), ok
}
