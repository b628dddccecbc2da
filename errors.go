package nodepm

import (
	"fmt"
	"strings"
)

// DetectionError reports that no package manager could be identified for a
// directory and no explicit override was supplied.
type DetectionError struct {
	Dir string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("no package manager detected for %q (no lockfile or packageManager field found)", e.Dir)
}

// ExecutionError reports that a delegated subprocess exited non-zero or
// could not be spawned. It carries the exit code and any captured output.
type ExecutionError struct {
	Command  string
	Args     []string
	Dir      string
	ExitCode int
	// Output holds the captured stdout and stderr when the operation ran
	// silently. Empty when stdio was inherited.
	Output string
	Err    error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit code %d", e.Command+" "+strings.Join(e.Args, " "), e.ExitCode)
	if e.Output != "" {
		msg += ": " + strings.TrimSpace(e.Output)
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// UnknownManagerError reports that an explicitly named manager is not one
// of the supported ones.
type UnknownManagerError struct {
	Name string
}

func (e *UnknownManagerError) Error() string {
	return fmt.Sprintf("unknown package manager %q (supported: npm, yarn, pnpm, bun)", e.Name)
}

// ExistenceCheckError reports that the project manifest could not be read
// or parsed while checking whether a dependency is installed.
type ExistenceCheckError struct {
	Name string
	Path string
	Err  error
}

func (e *ExistenceCheckError) Error() string {
	return fmt.Sprintf("cannot determine whether %q is installed: %s: %v", e.Name, e.Path, e.Err)
}

func (e *ExistenceCheckError) Unwrap() error {
	return e.Err
}
