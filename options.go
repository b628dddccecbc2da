package nodepm

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures a single operation. All fields are optional;
// ResolveOptions fills defaults and runs package manager detection.
type Options struct {
	// Cwd is the project directory. Defaults to the process working
	// directory.
	Cwd string

	// Silent suppresses subprocess stdio. Output is still captured and
	// attached to an ExecutionError on failure.
	Silent bool

	// PackageManager overrides filesystem detection when non-nil.
	PackageManager *PackageManager

	// Dev targets devDependencies for add operations.
	Dev bool

	// Global targets the manager's global store.
	Global bool

	// Workspace names a monorepo sub-project to operate on.
	Workspace string

	// FrozenLockfile makes install fail if the lockfile would change.
	// Install only.
	FrozenLockfile bool

	// Fs is the filesystem used for detection and existence checks.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// Runner executes the manager binary. Defaults to OSCommandRunner.
	Runner CommandRunner

	// Logger receives operation-level debug events. Defaults to a nop
	// logger.
	Logger *zerolog.Logger

	resolved bool
}

// ResolveOptions fills defaults on opts and detects the package manager
// unless an explicit override is present. It is idempotent: an already
// resolved *Options is returned unchanged, pointer-identical, with no
// re-detection. Passing nil resolves a fresh Options value.
func ResolveOptions(ctx context.Context, opts *Options) (*Options, error) {
	if opts != nil && opts.resolved {
		return opts, nil
	}
	if opts == nil {
		opts = &Options{}
	}

	if opts.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		opts.Cwd = cwd
	}

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = NewOSCommandRunner()
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	if opts.PackageManager == nil {
		pm, err := detectPackageManager(ctx, opts.Fs, opts.Runner, opts.Cwd)
		if err != nil {
			return nil, err
		}
		opts.PackageManager = pm
	}

	opts.resolved = true
	return opts, nil
}
