package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/system"
)

// DockerRuntime implements the Runtime interface using the Docker or Podman
// CLI. Both accept the same subcommands for everything sb needs.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string

	// ComposeCommand is the argv prefix for compose, e.g. ["docker", "compose"]
	// or ["docker-compose"].
	ComposeCommand []string

	// Executor runs the CLI
	Executor system.CommandExecutor
}

// NewDockerRuntime creates a runtime driving command. compose selects a
// standalone compose binary (it may carry arguments, shell-quoted); empty
// means "<command> compose".
func NewDockerRuntime(command, compose string, executor system.CommandExecutor) (*DockerRuntime, error) {
	composeArgv := []string{command, "compose"}
	if compose != "" {
		words, err := shellquote.Split(compose)
		if err != nil {
			return nil, fmt.Errorf("invalid compose command %q: %w", compose, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("invalid compose command %q: empty", compose)
		}
		composeArgv = words
	}

	if executor == nil {
		executor = system.DefaultExecutor()
	}

	return &DockerRuntime{
		Command:        command,
		ComposeCommand: composeArgv,
		Executor:       executor,
	}, nil
}

// Name returns the runtime identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

func trace(name string, args []string) {
	logging.Debug("runtime command", "cmd", shellquote.Join(append([]string{name}, args...)...))
}

// runCmd executes a docker/podman command and returns its stdout
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	trace(r.Command, args)
	out, err := r.Executor.Execute(ctx, r.Command, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %w", r.Command, args[0], err)
	}
	return string(out), nil
}

// ListNames returns container names, one per output line of `ps`.
func (r *DockerRuntime) ListNames(ctx context.Context, all bool) ([]string, error) {
	args := []string{"ps"}
	if all {
		args = append(args, "-a")
	}
	args = append(args, "--format", "{{.Names}}")

	output, err := r.runCmd(ctx, args...)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(output, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Start starts an existing container
func (r *DockerRuntime) Start(ctx context.Context, name string) error {
	_, err := r.runCmd(ctx, "start", name)
	return err
}

// Stop stops a running container
func (r *DockerRuntime) Stop(ctx context.Context, name string) error {
	_, err := r.runCmd(ctx, "stop", name)
	return err
}

// Remove removes a container
func (r *DockerRuntime) Remove(ctx context.Context, name string) error {
	_, err := r.runCmd(ctx, "rm", name)
	return err
}

// RemoveImage removes an image
func (r *DockerRuntime) RemoveImage(ctx context.Context, image string) error {
	_, err := r.runCmd(ctx, "rmi", image)
	return err
}

// RemoveVolume removes a named volume
func (r *DockerRuntime) RemoveVolume(ctx context.Context, volume string) error {
	_, err := r.runCmd(ctx, "volume", "rm", volume)
	return err
}

// ComposeUp runs `compose -f file -p project up -d` with output streamed to
// the terminal, so image pulls and builds stay visible.
func (r *DockerRuntime) ComposeUp(ctx context.Context, composeFile, project string) error {
	name := r.ComposeCommand[0]
	args := append(append([]string{}, r.ComposeCommand[1:]...), "-f", composeFile, "-p", project, "up", "-d")

	trace(name, args)
	if err := r.Executor.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("%s up failed: %w", shellquote.Join(r.ComposeCommand...), err)
	}
	return nil
}

// Attach runs `exec -it name command...` and returns the child's exit code.
func (r *DockerRuntime) Attach(ctx context.Context, name string, command []string) (int, error) {
	args := append([]string{"exec", "-it", name}, command...)

	trace(r.Command, args)
	code, err := r.Executor.ExecuteInteractive(ctx, r.Command, args...)
	if err != nil {
		return code, fmt.Errorf("%s exec failed: %w", r.Command, err)
	}
	return code, nil
}

// Ensure DockerRuntime implements Runtime
var _ Runtime = (*DockerRuntime)(nil)
