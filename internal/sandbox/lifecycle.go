package sandbox

import (
	"context"
	"fmt"

	"github.com/firefly-engineering/sb/internal/compose"
	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/identity"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/sanitize"
)

// Step is one runtime action on the way to an attached session.
type Step string

const (
	StepCreate Step = "create"
	StepStart  Step = "start"
	StepAttach Step = "attach"
)

// Plan returns the steps that take a sandbox in state to an attached
// session. Attach is always last.
func Plan(state State) []Step {
	switch state {
	case StateAbsent:
		return []Step{StepCreate, StepAttach}
	case StateStopped:
		return []Step{StepStart, StepAttach}
	default:
		return []Step{StepAttach}
	}
}

// Creator creates a sandbox from a compose spec. *compose.Creator implements it.
type Creator interface {
	Create(ctx context.Context, spec compose.Spec) (string, error)
}

// LimitsFunc supplies resource limits. It is only called when a sandbox is
// created.
type LimitsFunc func() (config.ResourceLimits, error)

// Options configures a Controller.
type Options struct {
	Runtime  runtime.Runtime
	Creator  Creator
	Identity identity.Identity
	WorkDir  string
	Limits   LimitsFunc
}

// Controller drives the sandbox of one working directory to an attached
// session.
type Controller struct {
	rt      runtime.Runtime
	creator Creator
	name    identity.Identity
	workdir string
	limits  LimitsFunc
}

// NewController creates a Controller. A nil Creator uses a compose.Creator
// on the same runtime; nil Limits uses the defaults.
func NewController(opts Options) *Controller {
	c := &Controller{
		rt:      opts.Runtime,
		creator: opts.Creator,
		name:    opts.Identity,
		workdir: opts.WorkDir,
		limits:  opts.Limits,
	}
	if c.creator == nil {
		c.creator = compose.NewCreator(opts.Runtime, nil)
	}
	if c.limits == nil {
		c.limits = func() (config.ResourceLimits, error) { return config.DefaultLimits(), nil }
	}
	return c
}

// session names what is being attached, for progress messages.
type session string

const (
	sessionShell  session = "bash session"
	sessionClaude session = "Claude Code"
)

// Shell attaches an interactive shell to the sandbox, creating or starting
// it first as needed, and returns the shell's exit code.
func (c *Controller) Shell(ctx context.Context) (int, error) {
	return c.attach(ctx, sessionShell, []string{config.EntryScript})
}

// Run sanitizes args and runs the claude command with them inside the
// sandbox. Rejected arguments fail before any runtime call.
func (c *Controller) Run(ctx context.Context, args []string) (int, error) {
	clean, err := sanitize.Args(args)
	if err != nil {
		return errors.ExitGeneralError, errors.InvalidArgument(err)
	}

	command := append([]string{config.EntryScript, config.ClaudeCommand}, clean...)
	return c.attach(ctx, sessionClaude, command)
}

func (c *Controller) attach(ctx context.Context, s session, command []string) (int, error) {
	name := c.name.String()
	log := logging.With("sandbox", name)
	state := Probe(ctx, c.rt, name)
	log.Debug("sandbox state", "state", state)

	for _, step := range Plan(state) {
		switch step {
		case StepCreate:
			logging.UserInfo("Creating new sandbox container for %s...", s)
			log.Info("creating sandbox", "workdir", c.workdir)
			if err := c.create(ctx); err != nil {
				return errors.ExitGeneralError, err
			}

		case StepStart:
			logging.UserInfo("Starting existing sandbox container for %s...", s)
			log.Info("starting sandbox")
			if err := c.rt.Start(ctx, name); err != nil {
				return errors.ExitGeneralError, errors.ContainerFailed("start", err)
			}

		case StepAttach:
			if state == StateRunning {
				logging.UserInfo("Connecting to running sandbox container for %s...", s)
			}
			code, err := c.rt.Attach(ctx, name, command)
			if err != nil {
				return errors.ExitGeneralError, errors.ContainerFailed("attach", err)
			}
			log.Info("session ended", "exit_code", code)
			return code, nil
		}
	}

	return errors.ExitGeneralError, errors.InvariantViolation(fmt.Sprintf("plan for state %q has no attach step", state), nil)
}

// create brings up the sandbox from a compose spec. A sandbox that appeared
// since it was probed is left alone.
func (c *Controller) create(ctx context.Context) error {
	name := c.name.String()
	if Exists(ctx, c.rt, name) {
		logging.Debug("sandbox already exists, skipping create", "name", name)
		return nil
	}

	limits, err := c.limits()
	if err != nil {
		return err
	}

	spec := compose.Spec{
		ContainerName: name,
		WorkDir:       c.workdir,
		VolumeName:    config.VolumeName,
		Image:         config.ImageName,
		CPUs:          limits.CPUs,
		Memory:        limits.Memory,
	}

	path, err := c.creator.Create(ctx, spec)
	if err != nil {
		return errors.ContainerFailed("create", err)
	}
	logging.Debug("sandbox created", "name", name, "compose_file", path)
	return nil
}
