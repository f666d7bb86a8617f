package compose

import (
	"strings"
	"testing"
)

func testSpec() Spec {
	return Spec{
		ContainerName: "sandbox-0a1b2c3d",
		WorkDir:       "/home/u/proj",
		VolumeName:    "sandbox-home",
		Image:         "sandbox",
		CPUs:          "4",
		Memory:        "8g",
	}
}

func TestRender(t *testing.T) {
	data, err := Render(testSpec())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v\n%s", err, data)
	}

	svc := f.Services[ServiceName]
	if svc.ContainerName != "sandbox-0a1b2c3d" {
		t.Errorf("container_name = %q", svc.ContainerName)
	}
	if svc.Image != "sandbox" {
		t.Errorf("image = %q", svc.Image)
	}
	if svc.WorkingDir != MountPoint {
		t.Errorf("working_dir = %q, want %q", svc.WorkingDir, MountPoint)
	}
	if svc.Deploy.Resources.Limits.CPUs != "4" || svc.Deploy.Resources.Limits.Memory != "8g" {
		t.Errorf("limits = %+v", svc.Deploy.Resources.Limits)
	}
	if got := f.Volumes["sandbox-home"].Name; got != "sandbox-home" {
		t.Errorf("volume name = %q", got)
	}
	if len(svc.Volumes) != 2 || svc.Volumes[0].Source != "/home/u/proj" || svc.Volumes[1].Target != HomeDir {
		t.Errorf("volumes = %+v", svc.Volumes)
	}
}

// Numeric-looking limits must stay strings in the output.
func TestRender_LimitsQuoted(t *testing.T) {
	spec := testSpec()
	spec.CPUs = "0.50"
	spec.Memory = "1024"

	data, err := Render(spec)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(data), `cpus: "0.50"`) || !strings.Contains(string(data), `memory: "1024"`) {
		t.Errorf("limits not quoted:\n%s", data)
	}
}

func TestRender_AwkwardWorkDir(t *testing.T) {
	dirs := []string{
		"/home/u/my project",
		"/home/u/a: b",
		"/home/u/#hash",
		`/home/u/quo"te`,
		`/home/u/back\slash`,
		"/home/u/new\nline",
		"/home/u/tab\there",
		"/home/u/日本語",
		"/home/u/{{.Image}}",
		"/home/u/- dash",
	}

	for _, dir := range dirs {
		t.Run(dir, func(t *testing.T) {
			spec := testSpec()
			spec.WorkDir = dir

			data, err := Render(spec)
			if err != nil {
				t.Fatalf("Render(%q) error: %v", dir, err)
			}
			f, err := Parse(data)
			if err != nil {
				t.Fatalf("Parse error: %v\n%s", err, data)
			}
			if got := f.Services[ServiceName].Volumes[0].Source; got != dir {
				t.Errorf("bind source = %q, want %q", got, dir)
			}
		})
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"bad container name", func(s *Spec) { s.ContainerName = "-x" }},
		{"relative workdir", func(s *Spec) { s.WorkDir = "proj" }},
		{"bad volume", func(s *Spec) { s.VolumeName = "a b" }},
		{"no image", func(s *Spec) { s.Image = "" }},
		{"no cpus", func(s *Spec) { s.CPUs = "" }},
		{"no memory", func(s *Spec) { s.Memory = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(&spec)
			if _, err := Render(spec); err == nil {
				t.Errorf("Render should reject %+v", spec)
			}
		})
	}
}

func TestVerify_DetectsMismatch(t *testing.T) {
	data, err := Render(testSpec())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	other := testSpec()
	other.Memory = "16g"
	if err := verify(data, other); err == nil {
		t.Error("verify should reject a file rendered from a different spec")
	}

	if err := verify([]byte("services: {}\n"), testSpec()); err == nil {
		t.Error("verify should reject a file without the sandbox service")
	}
	if err := verify([]byte("services: [\n"), testSpec()); err == nil {
		t.Error("verify should reject malformed YAML")
	}
}

func TestYamlQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{"a\nb", `"a\nb"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := yamlQuote(tt.in); got != tt.want {
			t.Errorf("yamlQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
