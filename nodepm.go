package nodepm

import (
	"context"
	"os"
	"strings"
	"time"
)

// InstallDependencies runs a full dependency install in the resolved
// project. With Options.FrozenLockfile set it uses the manager's strict
// lockfile mode (npm ci, yarn --immutable, pnpm/bun --frozen-lockfile).
func InstallDependencies(ctx context.Context, opts *Options) error {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return err
	}
	return execute(ctx, opts, InstallArgs(opts.PackageManager, opts.FrozenLockfile))
}

// AddDependency adds a single dependency to the resolved project.
func AddDependency(ctx context.Context, name string, opts *Options) error {
	return AddDependencies(ctx, []string{name}, opts)
}

// AddDependencies adds one or more dependencies to the resolved project.
func AddDependencies(ctx context.Context, names []string, opts *Options) error {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return err
	}
	args := addArgs(opts.PackageManager, names, addFlags{
		dev:       opts.Dev,
		global:    opts.Global,
		workspace: opts.Workspace,
	})
	return execute(ctx, opts, args)
}

// AddDevDependency adds a single dependency to devDependencies.
func AddDevDependency(ctx context.Context, name string, opts *Options) error {
	return AddDevDependencies(ctx, []string{name}, opts)
}

// AddDevDependencies adds one or more dependencies to devDependencies.
func AddDevDependencies(ctx context.Context, names []string, opts *Options) error {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return err
	}
	args := addArgs(opts.PackageManager, names, addFlags{
		dev:       true,
		global:    opts.Global,
		workspace: opts.Workspace,
	})
	return execute(ctx, opts, args)
}

// RemoveDependency removes exactly one named dependency from the resolved
// project.
func RemoveDependency(ctx context.Context, name string, opts *Options) error {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return err
	}
	args := removeArgs(opts.PackageManager, name, addFlags{
		dev:       opts.Dev,
		global:    opts.Global,
		workspace: opts.Workspace,
	})
	return execute(ctx, opts, args)
}

// EnsureDependencyInstalled installs name unless it is already present in
// the resolved project. Returns true when the dependency was already there
// and no subprocess ran. A failed existence check is logged and treated as
// absent, so the install still proceeds.
func EnsureDependencyInstalled(ctx context.Context, name string, opts *Options) (alreadyInstalled bool, err error) {
	opts, err = ResolveOptions(ctx, opts)
	if err != nil {
		return false, err
	}

	installed, err := IsDependencyInstalled(ctx, name, opts)
	if err != nil {
		opts.Logger.Warn().Err(err).Str("dependency", name).
			Msg("existence check failed, assuming absent")
	}
	if installed {
		opts.Logger.Debug().Str("dependency", name).Msg("already installed, skipping")
		return true, nil
	}

	return false, AddDependency(ctx, name, opts)
}

// execute delegates a synthesized argument list to the manager binary,
// suspending until the subprocess exits. Single invocation, no retries.
func execute(ctx context.Context, opts *Options, args []string) error {
	pm := opts.PackageManager

	start := time.Now()
	opts.Logger.Debug().
		Str("manager", string(pm.Name)).
		Str("cwd", opts.Cwd).
		Strs("args", args).
		Bool("silent", opts.Silent).
		Msg("running package manager")

	var runErr error
	var captured string
	if opts.Silent {
		stdout, stderr, err := opts.Runner.RunCommandInDirWithOutput(ctx, opts.Cwd, pm.Command, args...)
		runErr = err
		// Managers split failure detail across both streams (npm puts
		// some of it on stdout), so the error carries both.
		captured = joinOutput(stdout, stderr)
	} else {
		runErr = opts.Runner.RunCommandInDirStreaming(ctx, opts.Cwd, os.Stdout, os.Stderr, pm.Command, args...)
	}

	if runErr != nil {
		return &ExecutionError{
			Command:  pm.Command,
			Args:     args,
			Dir:      opts.Cwd,
			ExitCode: opts.Runner.GetExitCode(runErr),
			Output:   captured,
			Err:      runErr,
		}
	}

	opts.Logger.Debug().
		Str("manager", string(pm.Name)).
		Dur("duration", time.Since(start)).
		Msg("package manager finished")
	return nil
}

func joinOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	}
	return stdout + "\n" + stderr
}
