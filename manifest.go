package nodepm

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const manifestFile = "package.json"

// packageManifest is the subset of package.json this package cares about.
// Lockfile contents are never parsed; the manifest is read only for the
// packageManager field, declared dependencies, and workspace globs.
type packageManifest struct {
	Name                 string            `json:"name"`
	PackageManager       string            `json:"packageManager"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	Workspaces           []string          `json:"workspaces"`
}

// readManifest reads and parses package.json from dir. Returns nil with no
// error when the file does not exist.
func readManifest(fs afero.Fs, dir string) (*packageManifest, error) {
	path := filepath.Join(dir, manifestFile)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat manifest: %w", err)
	}
	if !exists {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &m, nil
}

// declares reports whether the manifest lists name under any dependency
// section.
func (m *packageManifest) declares(name string) bool {
	if m == nil {
		return false
	}
	for _, deps := range []map[string]string{
		m.Dependencies,
		m.DevDependencies,
		m.PeerDependencies,
		m.OptionalDependencies,
	} {
		if _, ok := deps[name]; ok {
			return true
		}
	}
	return false
}

// IsDependencyInstalled reports whether name is already present in the
// resolved project: either declared in the manifest or materialized under
// node_modules. A missing manifest means absent; an unreadable or malformed
// one surfaces as *ExistenceCheckError.
func IsDependencyInstalled(ctx context.Context, name string, opts *Options) (bool, error) {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return false, err
	}

	manifest, err := readManifest(opts.Fs, opts.Cwd)
	if err != nil {
		return false, &ExistenceCheckError{
			Name: name,
			Path: filepath.Join(opts.Cwd, manifestFile),
			Err:  err,
		}
	}

	if manifest.declares(name) {
		return true, nil
	}

	// Scoped names map directly onto the node_modules layout.
	installed, err := afero.Exists(opts.Fs, filepath.Join(opts.Cwd, "node_modules", name, manifestFile))
	if err != nil {
		return false, &ExistenceCheckError{Name: name, Path: opts.Cwd, Err: err}
	}
	return installed, nil
}

// pnpmWorkspaceManifest models pnpm-workspace.yaml.
type pnpmWorkspaceManifest struct {
	Packages []string `yaml:"packages"`
}

// Workspaces returns the workspace globs declared by the resolved project:
// pnpm-workspace.yaml when present, otherwise the manifest workspaces field.
func Workspaces(ctx context.Context, opts *Options) ([]string, error) {
	opts, err := ResolveOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	pnpmPath := filepath.Join(opts.Cwd, pnpmWorkspaceFile)
	if exists, _ := afero.Exists(opts.Fs, pnpmPath); exists {
		data, err := afero.ReadFile(opts.Fs, pnpmPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", pnpmWorkspaceFile, err)
		}
		var ws pnpmWorkspaceManifest
		if err := yaml.Unmarshal(data, &ws); err != nil {
			return nil, fmt.Errorf("parse %s: %w", pnpmWorkspaceFile, err)
		}
		return ws.Packages, nil
	}

	manifest, err := readManifest(opts.Fs, opts.Cwd)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, nil
	}
	return manifest.Workspaces, nil
}
