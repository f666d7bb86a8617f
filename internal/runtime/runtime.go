// Package runtime defines the container runtime interface for sb.
// The abstraction keeps docker and podman interchangeable and lets the
// lifecycle logic run against a mock in tests.
package runtime

import (
	"context"
)

// ContainerStatus represents the state of a container
type ContainerStatus string

const (
	StatusRunning ContainerStatus = "running"
	StatusStopped ContainerStatus = "stopped"
)

// Runtime is the interface that container backends must implement.
type Runtime interface {
	// Name returns the runtime identifier (e.g., "docker", "podman")
	Name() string

	// ListNames returns the names of running containers, or of all
	// containers when all is true.
	ListNames(ctx context.Context, all bool) ([]string, error)

	// Start starts an existing container
	Start(ctx context.Context, name string) error

	// Stop stops a running container
	Stop(ctx context.Context, name string) error

	// Remove removes a stopped container
	Remove(ctx context.Context, name string) error

	// RemoveImage removes an image
	RemoveImage(ctx context.Context, image string) error

	// RemoveVolume removes a named volume
	RemoveVolume(ctx context.Context, volume string) error

	// ComposeUp brings up the services in composeFile, detached, under the
	// given compose project name.
	ComposeUp(ctx context.Context, composeFile, project string) error

	// Attach runs command inside the container with the terminal attached
	// and returns its exit code.
	Attach(ctx context.Context, name string, command []string) (int, error)
}
