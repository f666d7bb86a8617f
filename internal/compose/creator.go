package compose

import (
	"context"
	"fmt"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/system"
)

// Creator writes a compose file for a Spec and brings it up.
type Creator struct {
	rt runtime.Runtime
	fs system.FileSystem
}

// NewCreator creates a Creator. A nil fs uses system.DefaultFS().
func NewCreator(rt runtime.Runtime, fs system.FileSystem) *Creator {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Creator{rt: rt, fs: fs}
}

// FilePath returns where the compose file for spec is written:
// <workdir>/.sandbox/.docker-compose-<name>.yml. Symlinks under workdir
// cannot move it outside workdir.
func FilePath(spec Spec) (string, error) {
	name := fmt.Sprintf(".docker-compose-%s.yml", spec.ContainerName)
	return securejoin.SecureJoin(spec.WorkDir, config.ProjectDir+"/"+name)
}

// Create renders spec, writes it under the working directory and runs
// compose up with the container name as the project name. It returns the
// path of the compose file.
func (c *Creator) Create(ctx context.Context, spec Spec) (string, error) {
	content, err := Render(spec)
	if err != nil {
		return "", err
	}

	path, err := FilePath(spec)
	if err != nil {
		return "", fmt.Errorf("failed to resolve compose file path: %w", err)
	}

	dir, err := securejoin.SecureJoin(spec.WorkDir, config.ProjectDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", config.ProjectDir, err)
	}
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := c.fs.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write compose file: %w", err)
	}
	logging.Debug("wrote compose file", "path", path, "container", spec.ContainerName)

	if err := c.rt.ComposeUp(ctx, path, spec.ContainerName); err != nil {
		return path, err
	}

	return path, nil
}
