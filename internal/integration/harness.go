package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firefly-engineering/sb/internal/compose"
	"github.com/firefly-engineering/sb/internal/identity"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/system"
)

// EnvEnable turns integration tests on.
const EnvEnable = "SB_INTEGRATION_TESTS"

// EnvImage overrides the image sandboxes are created from.
const EnvImage = "SB_TEST_IMAGE"

// DefaultImage has a shell as its default command, so with a TTY attached
// the container keeps running.
const DefaultImage = "alpine:3"

// Enabled reports whether integration tests should run.
func Enabled() bool {
	return os.Getenv(EnvEnable) == "1"
}

// TestHarness provides utilities for integration testing with a real
// container runtime.
type TestHarness struct {
	t         *testing.T
	tempDir   string
	rt        *runtime.DockerRuntime
	executor  system.CommandExecutor
	sandboxes []compose.Spec // Track created sandboxes for cleanup
}

// NewHarness creates a new test harness.
// It will skip the test unless SB_INTEGRATION_TESTS=1 and a runtime responds.
func NewHarness(t *testing.T) *TestHarness {
	t.Helper()

	if !Enabled() {
		t.Skipf("integration tests disabled (set %s=1 to enable)", EnvEnable)
	}

	executor := system.DefaultExecutor()
	rt, err := runtime.New(&runtime.Config{Type: runtime.RuntimeAuto, Executor: executor})
	if err != nil {
		t.Skipf("no container runtime available: %v", err)
	}

	// Quick check that the runtime is responsive
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rt.ListNames(ctx, true); err != nil {
		t.Skipf("%s not responsive: %v", rt.Name(), err)
	}

	dockerRT, ok := rt.(*runtime.DockerRuntime)
	if !ok {
		t.Skipf("unexpected runtime type %T", rt)
	}

	h := &TestHarness{
		t:        t,
		tempDir:  t.TempDir(),
		rt:       dockerRT,
		executor: executor,
	}

	t.Cleanup(h.Cleanup)

	return h
}

// Runtime returns the container runtime.
func (h *TestHarness) Runtime() runtime.Runtime {
	return h.rt
}

// CreateWorkDir creates a project directory and returns it with its sandbox
// identity.
func (h *TestHarness) CreateWorkDir(name string) (string, identity.Identity) {
	h.t.Helper()

	path := filepath.Join(h.tempDir, "projects", name)
	if err := os.MkdirAll(path, 0755); err != nil {
		h.t.Fatalf("Failed to create work dir: %v", err)
	}

	// Create a simple file to verify the mount
	if err := os.WriteFile(filepath.Join(path, "README.md"), []byte("# Test Project\n"), 0644); err != nil {
		h.t.Fatalf("Failed to create test file: %v", err)
	}

	id, err := identity.Resolve(path)
	if err != nil {
		h.t.Fatalf("Failed to resolve identity: %v", err)
	}
	return path, id
}

// Spec returns a compose spec for workdir that uses the test image and a
// volume private to this sandbox.
func (h *TestHarness) Spec(workdir string, id identity.Identity) compose.Spec {
	image := os.Getenv(EnvImage)
	if image == "" {
		image = DefaultImage
	}
	return compose.Spec{
		ContainerName: id.String(),
		WorkDir:       workdir,
		VolumeName:    id.String() + "-home",
		Image:         image,
		CPUs:          "1",
		Memory:        "256m",
	}
}

// TrackSandbox tracks a sandbox for cleanup.
func (h *TestHarness) TrackSandbox(spec compose.Spec) {
	h.sandboxes = append(h.sandboxes, spec)
}

// Cleanup brings every tracked compose project down, volumes included.
func (h *TestHarness) Cleanup() {
	ctx := context.Background()

	for _, spec := range h.sandboxes {
		file, err := compose.FilePath(spec)
		if err != nil {
			h.t.Logf("Warning: no compose file for %s: %v", spec.ContainerName, err)
			continue
		}
		args := append(append([]string{}, h.rt.ComposeCommand[1:]...), "-f", file, "-p", spec.ContainerName, "down", "-v")
		if err := h.executor.Run(ctx, h.rt.ComposeCommand[0], args...); err != nil {
			h.t.Logf("Warning: failed to bring down %s: %v", spec.ContainerName, err)
		}
	}
}
