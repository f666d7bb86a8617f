package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
)

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%w: %s", err, msg)
		}
		return out, err
	}
	return out, nil
}

func (e *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExecuteInteractive attaches the child to the terminal and waits for it.
// Interrupt and quit signals reach the child through the foreground process
// group; sb keeps running so it can relay the child's status.
func (e *osExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return ExitCodeUnknown, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-sigs:
			case <-done:
				return
			}
		}
	}()

	return ExitCodeOf(cmd.Wait())
}

// ExitCodeOf maps the result of a finished command to its exit code. A
// process terminated by a signal has no exit code and maps to
// ExitCodeUnknown. Errors other than a non-zero exit are returned as is.
func ExitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return ExitCodeUnknown, nil
	}
	return ExitCodeUnknown, err
}
