// Package app provides the application context for sb.
// It allows dependency injection for testing.
package app

import (
	"os"

	"github.com/firefly-engineering/sb/internal/compose"
	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/identity"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/sandbox"
	"github.com/firefly-engineering/sb/internal/system"
	"github.com/firefly-engineering/sb/internal/tui"
)

// App holds the application dependencies
type App struct {
	// Runtime is the container runtime. When nil it is detected on first use.
	Runtime runtime.Runtime

	// FS is used to write compose files
	FS system.FileSystem

	// Executor runs the container runtime CLI
	Executor system.CommandExecutor

	// Prompter asks for confirmation before destructive actions
	Prompter tui.Prompter

	// UserConfigPath is the TOML user config file
	UserConfigPath string

	// Getwd returns the working directory the sandbox belongs to
	Getwd func() (string, error)
}

// Option is a function that configures the App
type Option func(*App)

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithFS sets a custom file system
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithPrompter sets a custom prompter
func WithPrompter(p tui.Prompter) Option {
	return func(a *App) {
		a.Prompter = p
	}
}

// WithUserConfigPath sets the user config file
func WithUserConfigPath(path string) Option {
	return func(a *App) {
		a.UserConfigPath = path
	}
}

// WithWorkDir pins the working directory
func WithWorkDir(dir string) Option {
	return func(a *App) {
		a.Getwd = func() (string, error) { return dir, nil }
	}
}

// New creates a new App with the given options.
// The runtime is not detected until a command needs it.
func New(opts ...Option) *App {
	app := &App{
		FS:             system.DefaultFS(),
		Executor:       system.DefaultExecutor(),
		UserConfigPath: config.UserConfigPath(),
		Getwd:          os.Getwd,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Prompter == nil {
		app.Prompter = tui.NewPrompter(os.Stdin, os.Stdout)
	}

	return app
}

// WorkDir returns the working directory
func (a *App) WorkDir() (string, error) {
	wd, err := a.Getwd()
	if err != nil {
		return "", errors.InvariantViolation("failed to get current directory", err)
	}
	return wd, nil
}

// Identity returns the working directory and the sandbox identity derived
// from it
func (a *App) Identity() (string, identity.Identity, error) {
	wd, err := a.WorkDir()
	if err != nil {
		return "", "", err
	}
	id, err := identity.Resolve(wd)
	if err != nil {
		return "", "", err
	}
	return wd, id, nil
}

// Config loads the merged configuration for the working directory
func (a *App) Config() (*config.Config, error) {
	wd, err := a.WorkDir()
	if err != nil {
		return nil, err
	}
	return config.LoadFrom(wd, a.UserConfigPath)
}

// GetRuntime returns the runtime, detecting it on first use from the
// configured runtime command
func (a *App) GetRuntime() (runtime.Runtime, error) {
	if a.Runtime != nil {
		return a.Runtime, nil
	}

	rc := config.RuntimeConfig{}
	if wd, err := a.WorkDir(); err == nil {
		rc, err = config.RuntimeFrom(wd, a.UserConfigPath)
		if err != nil {
			logging.Warn("ignoring runtime configuration", "error", err)
		}
	}

	rtType := runtime.RuntimeAuto
	if rc.Command != "" {
		rtType = runtime.RuntimeType(rc.Command)
	}

	rt, err := runtime.New(&runtime.Config{
		Type:     rtType,
		Compose:  rc.Compose,
		Executor: a.Executor,
	})
	if err != nil {
		return nil, errors.ConfigError("no usable container runtime", err)
	}

	a.Runtime = rt
	return rt, nil
}

// Controller returns the lifecycle controller for the working directory's
// sandbox
func (a *App) Controller() (*sandbox.Controller, error) {
	wd, id, err := a.Identity()
	if err != nil {
		return nil, err
	}

	rt, err := a.GetRuntime()
	if err != nil {
		return nil, err
	}

	return sandbox.NewController(sandbox.Options{
		Runtime:  rt,
		Creator:  compose.NewCreator(rt, a.FS),
		Identity: id,
		WorkDir:  wd,
		Limits: func() (config.ResourceLimits, error) {
			cfg, err := a.Config()
			if err != nil {
				return config.ResourceLimits{}, err
			}
			return cfg.Limits, nil
		},
	}), nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
