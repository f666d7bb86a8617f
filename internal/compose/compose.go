// Package compose renders the declarative description a sandbox is created
// from and brings it up through the container runtime.
package compose

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/sb/internal/identity"
)

const (
	// ServiceName is the single service in every generated file.
	ServiceName = "sandbox"
	// MountPoint is where the working directory appears inside the sandbox.
	MountPoint = "/workspace"
	// HomeDir is where the shared home volume is mounted.
	HomeDir = "/home/agent"
)

//go:embed docker-compose.yml.tmpl
var composeTemplateText string

var composeTemplate = template.Must(template.New("compose").Funcs(template.FuncMap{
	"yaml": yamlQuote,
}).Parse(composeTemplateText))

// Spec describes one sandbox to create.
type Spec struct {
	ContainerName string
	WorkDir       string
	VolumeName    string
	Image         string
	CPUs          string
	Memory        string
}

// Validate checks that the Spec has all required fields
func (s *Spec) Validate() error {
	if err := identity.Validate(s.ContainerName); err != nil {
		return err
	}
	if !filepath.IsAbs(s.WorkDir) {
		return fmt.Errorf("working directory must be absolute (got %q)", s.WorkDir)
	}
	if err := identity.Validate(s.VolumeName); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	if s.Image == "" {
		return fmt.Errorf("image is required")
	}
	if s.CPUs == "" || s.Memory == "" {
		return fmt.Errorf("resource limits are required")
	}
	return nil
}

// templateData is what the template sees.
type templateData struct {
	Spec
	MountPoint string
	HomeDir    string
}

// yamlQuote renders s as a double-quoted YAML scalar. YAML double-quoted
// escapes are a superset of Go's for valid UTF-8.
func yamlQuote(s string) string {
	return strconv.Quote(s)
}

// File is the subset of a compose file Render checks after rendering.
type File struct {
	Services map[string]Service `yaml:"services"`
	Volumes  map[string]struct {
		Name string `yaml:"name"`
	} `yaml:"volumes"`
}

// Service is one compose service.
type Service struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	WorkingDir    string   `yaml:"working_dir"`
	Volumes       []Volume `yaml:"volumes"`
	Deploy        struct {
		Resources struct {
			Limits struct {
				CPUs   string `yaml:"cpus"`
				Memory string `yaml:"memory"`
			} `yaml:"limits"`
		} `yaml:"resources"`
	} `yaml:"deploy"`
}

// Volume is a long-form compose volume entry.
type Volume struct {
	Type   string `yaml:"type"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Render produces the compose file for spec. The output is parsed back and
// compared against spec before it is returned.
func Render(spec Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compose spec: %w", err)
	}

	var buf bytes.Buffer
	data := templateData{Spec: spec, MountPoint: MountPoint, HomeDir: HomeDir}
	if err := composeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute compose template: %w", err)
	}

	if err := verify(buf.Bytes(), spec); err != nil {
		return nil, fmt.Errorf("generated compose file is inconsistent: %w", err)
	}

	return buf.Bytes(), nil
}

// Parse decodes a compose file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func verify(data []byte, spec Spec) error {
	f, err := Parse(data)
	if err != nil {
		return err
	}

	svc, ok := f.Services[ServiceName]
	if !ok {
		return fmt.Errorf("service %q missing", ServiceName)
	}
	if len(f.Services) != 1 {
		return fmt.Errorf("expected 1 service, found %d", len(f.Services))
	}

	checks := []struct {
		field, got, want string
	}{
		{"image", svc.Image, spec.Image},
		{"container_name", svc.ContainerName, spec.ContainerName},
		{"cpus", svc.Deploy.Resources.Limits.CPUs, spec.CPUs},
		{"memory", svc.Deploy.Resources.Limits.Memory, spec.Memory},
		{"volume name", f.Volumes[spec.VolumeName].Name, spec.VolumeName},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%s is %q, want %q", c.field, c.got, c.want)
		}
	}

	want := []Volume{
		{Type: "bind", Source: spec.WorkDir, Target: MountPoint},
		{Type: "volume", Source: spec.VolumeName, Target: HomeDir},
	}
	if len(svc.Volumes) != len(want) {
		return fmt.Errorf("expected %d volumes, found %d", len(want), len(svc.Volumes))
	}
	for i := range want {
		if svc.Volumes[i] != want[i] {
			return fmt.Errorf("volume %d is %+v, want %+v", i, svc.Volumes[i], want[i])
		}
	}

	return nil
}
