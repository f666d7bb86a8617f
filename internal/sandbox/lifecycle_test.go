package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/firefly-engineering/sb/internal/compose"
	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
	"github.com/firefly-engineering/sb/internal/system"
)

const testName = "sandbox-0a1b2c3d"

// captureUser redirects user-facing output for the duration of t.
func captureUser(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetUserOutput(&buf, &buf)
	t.Cleanup(func() { logging.SetUserOutput(nil, nil) })
	return &buf
}

func newTestController(t *testing.T, rt runtime.Runtime) (*Controller, *system.MockFS) {
	t.Helper()
	fs := system.NewMockFS()
	return NewController(Options{
		Runtime:  rt,
		Creator:  compose.NewCreator(rt, fs),
		Identity: testName,
		WorkDir:  t.TempDir(),
	}), fs
}

func TestPlan(t *testing.T) {
	tests := []struct {
		state State
		want  []Step
	}{
		{StateAbsent, []Step{StepCreate, StepAttach}},
		{StateStopped, []Step{StepStart, StepAttach}},
		{StateRunning, []Step{StepAttach}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := Plan(tt.state); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestController_Shell_CallOrder(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(m *runtime.MockRuntime)
		wantMethods []string
		wantMessage string
	}{
		{
			name:        "absent",
			setup:       func(m *runtime.MockRuntime) {},
			wantMethods: []string{"ListNames", "ListNames", "ComposeUp", "Attach"},
			wantMessage: "Creating new sandbox container for bash session...",
		},
		{
			name:        "stopped",
			setup:       func(m *runtime.MockRuntime) { m.AddContainer(testName, runtime.StatusStopped) },
			wantMethods: []string{"ListNames", "ListNames", "Start", "Attach"},
			wantMessage: "Starting existing sandbox container for bash session...",
		},
		{
			name:        "running",
			setup:       func(m *runtime.MockRuntime) { m.AddContainer(testName, runtime.StatusRunning) },
			wantMethods: []string{"ListNames", "ListNames", "Attach"},
			wantMessage: "Connecting to running sandbox container for bash session...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureUser(t)
			m := runtime.NewMockRuntime()
			tt.setup(m)
			c, _ := newTestController(t, m)

			code, err := c.Shell(context.Background())
			if err != nil {
				t.Fatalf("Shell error: %v", err)
			}
			if code != 0 {
				t.Errorf("Shell code = %d, want 0", code)
			}

			if got := m.Methods(); !reflect.DeepEqual(got, tt.wantMethods) {
				t.Errorf("calls = %v, want %v", got, tt.wantMethods)
			}

			attach := m.GetCallsFor("Attach")[0]
			if attach.Args[0] != testName {
				t.Errorf("attached to %v, want %s", attach.Args[0], testName)
			}
			if cmd := attach.Args[1].([]string); !reflect.DeepEqual(cmd, []string{config.EntryScript}) {
				t.Errorf("attach command = %q", cmd)
			}

			if !strings.Contains(out.String(), tt.wantMessage) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.wantMessage)
			}
		})
	}
}

func TestController_Create_WritesComposeFile(t *testing.T) {
	captureUser(t)
	m := runtime.NewMockRuntime()
	fs := system.NewMockFS()
	workdir := t.TempDir()
	c := NewController(Options{
		Runtime:  m,
		Creator:  compose.NewCreator(m, fs),
		Identity: testName,
		WorkDir:  workdir,
		Limits: func() (config.ResourceLimits, error) {
			return config.ResourceLimits{CPUs: "2", Memory: "512m"}, nil
		},
	})

	if _, err := c.Shell(context.Background()); err != nil {
		t.Fatalf("Shell error: %v", err)
	}

	up := m.GetCallsFor("ComposeUp")[0]
	data, ok := fs.GetFile(up.Args[0].(string))
	if !ok {
		t.Fatalf("compose file %v not written", up.Args[0])
	}
	f, err := compose.Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	svc := f.Services[compose.ServiceName]
	if svc.ContainerName != testName || svc.Volumes[0].Source != workdir {
		t.Errorf("service = %+v", svc)
	}
	if svc.Deploy.Resources.Limits.CPUs != "2" || svc.Deploy.Resources.Limits.Memory != "512m" {
		t.Errorf("limits = %+v", svc.Deploy.Resources.Limits)
	}
	if up.Args[1] != testName {
		t.Errorf("compose project = %v, want %s", up.Args[1], testName)
	}
}

func TestController_Run_ForwardsArgs(t *testing.T) {
	captureUser(t)
	m := runtime.NewMockRuntime()
	m.AddContainer(testName, runtime.StatusRunning)
	c, _ := newTestController(t, m)

	if _, err := c.Run(context.Background(), []string{"fix the bug", "now"}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	cmd := m.GetCallsFor("Attach")[0].Args[1].([]string)
	want := []string{config.EntryScript, config.ClaudeCommand, "fix the bug", "now"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("attach command = %q, want %q", cmd, want)
	}
}

func TestController_Run_RejectsBeforeRuntime(t *testing.T) {
	tests := [][]string{
		{"hello; rm -rf /"},
		{"ok", "-h"},
		{strings.Repeat("a", 1001)},
	}

	for _, args := range tests {
		m := runtime.NewMockRuntime()
		c, _ := newTestController(t, m)

		code, err := c.Run(context.Background(), args)
		if err == nil {
			t.Fatalf("Run(%q) should fail", args)
		}
		if code != 1 || errors.GetExitCode(err) != 1 {
			t.Errorf("Run(%q) code = %d / %d, want 1", args, code, errors.GetExitCode(err))
		}
		if errors.KindOf(err) != errors.KindValidation {
			t.Errorf("Run(%q) kind = %q, want %q", args, errors.KindOf(err), errors.KindValidation)
		}
		if calls := m.GetCalls(); len(calls) != 0 {
			t.Errorf("Run(%q) made runtime calls: %v", args, m.Methods())
		}
	}
}

func TestController_ExitCodePassthrough(t *testing.T) {
	for _, want := range []int{0, 1, 7, 130, 255} {
		t.Run(fmt.Sprint(want), func(t *testing.T) {
			captureUser(t)
			m := runtime.NewMockRuntime()
			m.AddContainer(testName, runtime.StatusRunning)
			m.AttachExitCode = want
			c, _ := newTestController(t, m)

			code, err := c.Run(context.Background(), []string{"x"})
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if code != want {
				t.Errorf("code = %d, want %d", code, want)
			}
		})
	}
}

func TestController_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(m *runtime.MockRuntime)
		limitsErr  error
		wantKind   errors.Kind
		wantNoCall string
	}{
		{
			name: "start fails",
			setup: func(m *runtime.MockRuntime) {
				m.AddContainer(testName, runtime.StatusStopped)
				m.SetError("Start", fmt.Errorf("no such container"))
			},
			wantKind:   errors.KindContainer,
			wantNoCall: "Attach",
		},
		{
			name:       "create fails",
			setup:      func(m *runtime.MockRuntime) { m.SetError("ComposeUp", fmt.Errorf("pull access denied")) },
			wantKind:   errors.KindContainer,
			wantNoCall: "Attach",
		},
		{
			name:       "limits invalid",
			setup:      func(m *runtime.MockRuntime) {},
			limitsErr:  errors.ConfigError("invalid resource limits", fmt.Errorf("bad")),
			wantKind:   errors.KindConfig,
			wantNoCall: "ComposeUp",
		},
		{
			name: "attach cannot launch",
			setup: func(m *runtime.MockRuntime) {
				m.AddContainer(testName, runtime.StatusRunning)
				m.SetError("Attach", fmt.Errorf("docker: not found"))
			},
			wantKind: errors.KindContainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureUser(t)
			m := runtime.NewMockRuntime()
			tt.setup(m)
			c := NewController(Options{
				Runtime:  m,
				Creator:  compose.NewCreator(m, system.NewMockFS()),
				Identity: testName,
				WorkDir:  t.TempDir(),
				Limits: func() (config.ResourceLimits, error) {
					return config.DefaultLimits(), tt.limitsErr
				},
			})

			code, err := c.Shell(context.Background())
			if err == nil {
				t.Fatal("Shell should fail")
			}
			if code != 1 || errors.GetExitCode(err) != 1 {
				t.Errorf("code = %d / %d, want 1", code, errors.GetExitCode(err))
			}
			if errors.KindOf(err) != tt.wantKind {
				t.Errorf("kind = %q, want %q", errors.KindOf(err), tt.wantKind)
			}
			if tt.wantNoCall != "" && len(m.GetCallsFor(tt.wantNoCall)) != 0 {
				t.Errorf("%s should not be called", tt.wantNoCall)
			}
		})
	}
}

// racingRuntime makes the sandbox appear right after the first probe, as if
// another sb invocation created it concurrently.
type racingRuntime struct {
	*runtime.MockRuntime
	probes int
}

func (r *racingRuntime) ListNames(ctx context.Context, all bool) ([]string, error) {
	r.probes++
	if r.probes == 2 {
		r.AddContainer(testName, runtime.StatusRunning)
	}
	return r.MockRuntime.ListNames(ctx, all)
}

type countingCreator struct {
	calls int
}

func (c *countingCreator) Create(ctx context.Context, spec compose.Spec) (string, error) {
	c.calls++
	return "", nil
}

func TestController_Create_SkipsWhenAlreadyCreated(t *testing.T) {
	captureUser(t)
	rt := &racingRuntime{MockRuntime: runtime.NewMockRuntime()}
	creator := &countingCreator{}
	c := NewController(Options{Runtime: rt, Creator: creator, Identity: testName, WorkDir: t.TempDir()})

	if _, err := c.Shell(context.Background()); err != nil {
		t.Fatalf("Shell error: %v", err)
	}
	if creator.calls != 0 {
		t.Errorf("Create called %d times, want 0", creator.calls)
	}
	if len(rt.GetCallsFor("Attach")) != 1 {
		t.Error("should still attach")
	}
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(Options{Runtime: runtime.NewMockRuntime(), Identity: testName, WorkDir: "/w"})

	if _, ok := c.creator.(*compose.Creator); !ok {
		t.Errorf("default creator = %T, want *compose.Creator", c.creator)
	}
	limits, err := c.limits()
	if err != nil || limits != config.DefaultLimits() {
		t.Errorf("default limits = %+v, %v", limits, err)
	}
}

func TestController_LogsTransitions(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *runtime.MockRuntime)
		wantLog string
	}{
		{"absent", func(m *runtime.MockRuntime) {}, "creating sandbox"},
		{"stopped", func(m *runtime.MockRuntime) { m.AddContainer(testName, runtime.StatusStopped) }, "starting sandbox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureUser(t)
			var buf bytes.Buffer
			logging.Setup(true, false, &buf)
			t.Cleanup(func() { logging.Setup(false, false, nil) })

			m := runtime.NewMockRuntime()
			tt.setup(m)
			c, _ := newTestController(t, m)

			if _, err := c.Shell(context.Background()); err != nil {
				t.Fatalf("Shell error: %v", err)
			}

			out := buf.String()
			for _, want := range []string{tt.wantLog, "sandbox=" + testName, "session ended"} {
				if !strings.Contains(out, want) {
					t.Errorf("log = %q, want it to contain %q", out, want)
				}
			}
		})
	}
}
