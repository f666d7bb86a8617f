package sandbox

import (
	"context"
	"strings"

	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
)

// State is the observed state of a sandbox. It is recomputed on every
// invocation and never stored.
type State string

const (
	StateAbsent  State = "absent"
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// Exists reports whether a container called name exists, running or not.
// A runtime failure counts as "does not exist".
func Exists(ctx context.Context, rt runtime.Runtime, name string) bool {
	return listed(ctx, rt, name, true)
}

// IsRunning reports whether a container called name is running.
// A runtime failure counts as "not running".
func IsRunning(ctx context.Context, rt runtime.Runtime, name string) bool {
	return listed(ctx, rt, name, false)
}

func listed(ctx context.Context, rt runtime.Runtime, name string, all bool) bool {
	names, err := rt.ListNames(ctx, all)
	if err != nil {
		logging.Debug("container listing failed", "all", all, "error", err)
		return false
	}
	for _, n := range names {
		if strings.TrimSpace(n) == name {
			return true
		}
	}
	return false
}

// Probe determines the State of the sandbox called name. The running check
// is only made for a container that exists.
func Probe(ctx context.Context, rt runtime.Runtime, name string) State {
	if !Exists(ctx, rt, name) {
		return StateAbsent
	}
	if !IsRunning(ctx, rt, name) {
		return StateStopped
	}
	return StateRunning
}
