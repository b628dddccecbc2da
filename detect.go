package nodepm

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

const (
	pnpmWorkspaceFile = "pnpm-workspace.yaml"
	yarnBerryRCFile   = ".yarnrc.yml"
)

// lockfileSignal maps a signal file to the manager it identifies. Order is
// the detection priority within a directory.
type lockfileSignal struct {
	file string
	name PackageManagerName
}

var lockfileSignals = []lockfileSignal{
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", Pnpm},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
	{"npm-shrinkwrap.json", NPM},
	{pnpmWorkspaceFile, Pnpm},
}

// DetectPackageManager inspects dir for manager-specific signal files and
// returns the first match, walking up parent directories until the
// filesystem root. The manifest packageManager field takes precedence over
// lockfiles. Returns *DetectionError when no signal is found.
func DetectPackageManager(ctx context.Context, dir string) (*PackageManager, error) {
	return detectPackageManager(ctx, afero.NewOsFs(), NewOSCommandRunner(), dir)
}

func detectPackageManager(ctx context.Context, fs afero.Fs, runner CommandRunner, dir string) (*PackageManager, error) {
	current := filepath.Clean(dir)
	for {
		pm, err := detectInDir(ctx, fs, runner, current)
		if err != nil {
			return nil, err
		}
		if pm != nil {
			return pm, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, &DetectionError{Dir: dir}
		}
		current = parent
	}
}

// detectInDir checks a single directory for signals. Returns (nil, nil)
// when the directory carries none.
func detectInDir(ctx context.Context, fs afero.Fs, runner CommandRunner, dir string) (*PackageManager, error) {
	manifest, err := readManifest(fs, dir)
	if err != nil {
		return nil, err
	}

	if manifest != nil && manifest.PackageManager != "" {
		if pm := parsePackageManagerField(manifest.PackageManager); pm != nil {
			if pm.MajorVersion == "" {
				pm.MajorVersion = probeMajorVersion(ctx, fs, runner, dir, pm)
			}
			return pm, nil
		}
	}

	for _, signal := range lockfileSignals {
		exists, err := afero.Exists(fs, filepath.Join(dir, signal.file))
		if err != nil || !exists {
			continue
		}
		pm := newPackageManager(signal.name)
		pm.Lockfile = signal.file
		pm.MajorVersion = probeMajorVersion(ctx, fs, runner, dir, pm)
		return pm, nil
	}

	return nil, nil
}

// parsePackageManagerField parses a manifest packageManager value such as
// "pnpm@9.1.0" or "yarn@3.6.4+sha256.abc". Returns nil for unsupported or
// malformed values.
func parsePackageManagerField(field string) *PackageManager {
	name, version, _ := strings.Cut(strings.TrimSpace(field), "@")
	if !IsKnownManager(name) {
		return nil
	}

	pm := newPackageManager(PackageManagerName(name))
	// Hash suffixes ("+sha256.…") are not part of the version proper.
	version, _, _ = strings.Cut(version, "+")
	if v, err := semver.NewVersion(version); err == nil {
		pm.MajorVersion = majorString(v)
	}
	return pm
}

// probeMajorVersion asks the manager binary for its version, from inside
// the project directory: corepack shims answer per-project, so probing
// elsewhere could misreport yarn classic vs berry. Falls back to a yarn
// classic/berry heuristic when the binary is unavailable.
func probeMajorVersion(ctx context.Context, fs afero.Fs, runner CommandRunner, dir string, pm *PackageManager) string {
	if runner.CommandExists(pm.Command) {
		out, err := runner.RunCommandInDir(ctx, dir, pm.Command, "--version")
		if err == nil {
			if v, err := semver.NewVersion(strings.TrimSpace(out)); err == nil {
				return majorString(v)
			}
		}
	}

	if pm.Name == Yarn {
		// Berry projects carry a .yarnrc.yml next to the lockfile.
		if exists, _ := afero.Exists(fs, filepath.Join(dir, yarnBerryRCFile)); exists {
			return "2"
		}
		return "1"
	}

	return ""
}

func majorString(v *semver.Version) string {
	return strconv.FormatUint(v.Major(), 10)
}
