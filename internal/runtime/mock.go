package runtime

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MockRuntime is a mock implementation of Runtime for testing.
// ComposeUp creates a running container named after the compose project.
type MockRuntime struct {
	mu sync.Mutex

	// Containers tracks the state of mock containers
	Containers map[string]ContainerStatus

	// Images and Volumes track which artifacts exist
	Images  map[string]bool
	Volumes map[string]bool

	// Errors allows injecting errors for specific operations. Keys are
	// method names; "ListNames" covers both listings, "ListAll" and
	// "ListRunning" only one of them.
	Errors map[string]error

	// AttachExitCode is returned by Attach
	AttachExitCode int

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []any
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Containers: make(map[string]ContainerStatus),
		Images:     make(map[string]bool),
		Volumes:    make(map[string]bool),
		Errors:     make(map[string]error),
		CallLog:    make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...any) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddContainer adds a container to the mock
func (m *MockRuntime) AddContainer(name string, status ContainerStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers[name] = status
}

// AddImage adds an image to the mock
func (m *MockRuntime) AddImage(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Images[name] = true
}

// AddVolume adds a volume to the mock
func (m *MockRuntime) AddVolume(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Volumes[name] = true
}

// GetCalls returns all recorded calls
func (m *MockRuntime) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.CallLog))
	copy(calls, m.CallLog)
	return calls
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Methods returns the method names of all recorded calls, in order
func (m *MockRuntime) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	methods := make([]string, len(m.CallLog))
	for i, call := range m.CallLog {
		methods[i] = call.Method
	}
	return methods
}

// Reset clears all state
func (m *MockRuntime) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Containers = make(map[string]ContainerStatus)
	m.Images = make(map[string]bool)
	m.Volumes = make(map[string]bool)
	m.Errors = make(map[string]error)
	m.AttachExitCode = 0
	m.CallLog = make([]MockCall, 0)
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// ListNames returns the names of running, or all, mock containers, sorted
func (m *MockRuntime) ListNames(ctx context.Context, all bool) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListNames", all)

	if err, ok := m.Errors["ListNames"]; ok {
		return nil, err
	}
	key := "ListRunning"
	if all {
		key = "ListAll"
	}
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}

	var names []string
	for name, status := range m.Containers {
		if all || status == StatusRunning {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Start starts an existing container
func (m *MockRuntime) Start(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", name)

	if err, ok := m.Errors["Start"]; ok {
		return err
	}

	if _, ok := m.Containers[name]; ok {
		m.Containers[name] = StatusRunning
		return nil
	}

	return fmt.Errorf("container not found: %s", name)
}

// Stop stops a running container
func (m *MockRuntime) Stop(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", name)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}

	if _, ok := m.Containers[name]; ok {
		m.Containers[name] = StatusStopped
		return nil
	}

	return fmt.Errorf("container not found: %s", name)
}

// Remove removes a container
func (m *MockRuntime) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Remove", name)

	if err, ok := m.Errors["Remove"]; ok {
		return err
	}

	status, ok := m.Containers[name]
	if !ok {
		return fmt.Errorf("container not found: %s", name)
	}
	if status == StatusRunning {
		return fmt.Errorf("container %s is running", name)
	}

	delete(m.Containers, name)
	return nil
}

// RemoveImage removes an image
func (m *MockRuntime) RemoveImage(ctx context.Context, image string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveImage", image)

	if err, ok := m.Errors["RemoveImage"]; ok {
		return err
	}
	if !m.Images[image] {
		return fmt.Errorf("image not found: %s", image)
	}

	delete(m.Images, image)
	return nil
}

// RemoveVolume removes a volume
func (m *MockRuntime) RemoveVolume(ctx context.Context, volume string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("RemoveVolume", volume)

	if err, ok := m.Errors["RemoveVolume"]; ok {
		return err
	}
	if !m.Volumes[volume] {
		return fmt.Errorf("volume not found: %s", volume)
	}

	delete(m.Volumes, volume)
	return nil
}

// ComposeUp starts a container named after project
func (m *MockRuntime) ComposeUp(ctx context.Context, composeFile, project string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ComposeUp", composeFile, project)

	if err, ok := m.Errors["ComposeUp"]; ok {
		return err
	}

	m.Containers[project] = StatusRunning
	return nil
}

// Attach returns AttachExitCode for running containers
func (m *MockRuntime) Attach(ctx context.Context, name string, command []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Attach", name, command)

	if err, ok := m.Errors["Attach"]; ok {
		return 1, err
	}

	if m.Containers[name] != StatusRunning {
		return 1, fmt.Errorf("container %s is not running", name)
	}

	return m.AttachExitCode, nil
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
