package nodepm

import (
	"context"
	"io"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing
type MockCommandRunner struct {
	CommandExistsFunc             func(name string) bool
	RequireCommandFunc            func(name string) error
	RunCommandFunc                func(ctx context.Context, name string, args ...string) (string, error)
	RunCommandInDirFunc           func(ctx context.Context, dir, name string, args ...string) (string, error)
	RunCommandInDirWithOutputFunc func(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)
	RunCommandInDirStreamingFunc  func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
	GetExitCodeFunc               func(err error) int
}

// CommandExists implements CommandRunner.CommandExists
func (m *MockCommandRunner) CommandExists(name string) bool {
	if m.CommandExistsFunc != nil {
		return m.CommandExistsFunc(name)
	}
	return false
}

// RequireCommand implements CommandRunner.RequireCommand
func (m *MockCommandRunner) RequireCommand(name string) error {
	if m.RequireCommandFunc != nil {
		return m.RequireCommandFunc(name)
	}
	return nil
}

// RunCommand implements CommandRunner.RunCommand
func (m *MockCommandRunner) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	if m.RunCommandFunc != nil {
		return m.RunCommandFunc(ctx, name, args...)
	}
	return "", nil
}

// RunCommandInDir implements CommandRunner.RunCommandInDir
func (m *MockCommandRunner) RunCommandInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	if m.RunCommandInDirFunc != nil {
		return m.RunCommandInDirFunc(ctx, dir, name, args...)
	}
	return "", nil
}

// RunCommandInDirWithOutput implements CommandRunner.RunCommandInDirWithOutput
func (m *MockCommandRunner) RunCommandInDirWithOutput(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error) {
	if m.RunCommandInDirWithOutputFunc != nil {
		return m.RunCommandInDirWithOutputFunc(ctx, dir, name, args...)
	}
	return "", "", nil
}

// RunCommandInDirStreaming implements CommandRunner.RunCommandInDirStreaming
func (m *MockCommandRunner) RunCommandInDirStreaming(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	if m.RunCommandInDirStreamingFunc != nil {
		return m.RunCommandInDirStreamingFunc(ctx, dir, stdout, stderr, name, args...)
	}
	return nil
}

// GetExitCode implements CommandRunner.GetExitCode
func (m *MockCommandRunner) GetExitCode(err error) int {
	if m.GetExitCodeFunc != nil {
		return m.GetExitCodeFunc(err)
	}
	return 0
}
