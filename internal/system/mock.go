package system

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	MkdirAllErr  error
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	// Ensure parent directories exist
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: perm}
	return nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	_, dirOk := m.dirs[path]
	return fileOk || dirOk
}

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses. A pattern is either the
	// full command line ("docker ps -a --format {{.Names}}"), the command
	// plus its first argument ("docker ps"), or the bare command name. The
	// most specific match wins.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// InteractiveExitCode is returned by ExecuteInteractive.
	InteractiveExitCode int

	// InteractiveErr is returned by ExecuteInteractive if set.
	InteractiveErr error
}

// MockCommand records an executed command.
type MockCommand struct {
	Name        string
	Args        []string
	Interactive bool
}

// Line returns the command as a single space separated string.
func (c MockCommand) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) lookup(name string, args []string) MockResponse {
	full := strings.Join(append([]string{name}, args...), " ")
	if resp, ok := m.Responses[full]; ok {
		return resp
	}
	if len(args) > 0 {
		if resp, ok := m.Responses[name+" "+args[0]]; ok {
			return resp
		}
	}
	if resp, ok := m.Responses[name]; ok {
		return resp
	}
	return m.DefaultResponse
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})
	resp := m.lookup(name, args)
	return resp.Output, resp.Err
}

func (m *MockExecutor) Run(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})
	return m.lookup(name, args).Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args, Interactive: true})

	if m.InteractiveErr != nil {
		return ExitCodeUnknown, m.InteractiveErr
	}
	return m.InteractiveExitCode, nil
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
