package runtime

import (
	"fmt"
	"os/exec"

	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/system"
)

// RuntimeType identifies which container runtime to use
type RuntimeType string

const (
	RuntimeDocker RuntimeType = "docker"
	RuntimePodman RuntimeType = "podman"
	RuntimeAuto   RuntimeType = "auto"
)

// Config holds runtime configuration
type Config struct {
	// Type specifies which runtime to use (or "auto" for auto-detection)
	Type RuntimeType

	// Compose is a standalone compose command; empty uses "<runtime> compose"
	Compose string

	// Executor runs the runtime CLI; nil uses system.DefaultExecutor()
	Executor system.CommandExecutor
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() *Config {
	return &Config{
		Type: RuntimeAuto,
	}
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// detectionOrder is the order runtimes are tried in when none is configured.
var detectionOrder = []RuntimeType{RuntimeDocker, RuntimePodman}

// Detect determines which container runtime to use. An explicit preference
// must be installed; otherwise docker is preferred over podman.
func Detect(preferred RuntimeType) (RuntimeType, error) {
	if preferred != "" && preferred != RuntimeAuto {
		if !isSupported(preferred) {
			return "", fmt.Errorf("unsupported container runtime %q (supported: docker, podman)", preferred)
		}
		if _, err := lookPath(string(preferred)); err != nil {
			return "", fmt.Errorf("container runtime %q not found in PATH", preferred)
		}
		logging.Debug("using configured runtime", "runtime", preferred)
		return preferred, nil
	}

	for _, rt := range detectionOrder {
		if _, err := lookPath(string(rt)); err == nil {
			logging.Debug("detected runtime", "runtime", rt)
			return rt, nil
		}
	}

	return "", fmt.Errorf("no supported container runtime found (tried: docker, podman)")
}

func isSupported(rt RuntimeType) bool {
	for _, s := range detectionOrder {
		if s == rt {
			return true
		}
	}
	return false
}

// New creates a new Runtime based on the configuration.
// If Type is RuntimeAuto, it auto-detects the best runtime.
func New(cfg *Config) (Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	runtimeType, err := Detect(cfg.Type)
	if err != nil {
		return nil, err
	}

	logging.Debug("creating runtime", "type", runtimeType, "compose", cfg.Compose)

	return NewDockerRuntime(string(runtimeType), cfg.Compose, cfg.Executor)
}

// Available returns the runtimes installed on this system, in detection order
func Available() []RuntimeType {
	var available []RuntimeType
	for _, rt := range detectionOrder {
		if _, err := lookPath(string(rt)); err == nil {
			available = append(available, rt)
		}
	}
	return available
}
