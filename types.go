// Package nodepm is a thin abstraction over the JavaScript package manager
// CLIs (npm, yarn, pnpm, bun). It detects which manager governs a project,
// translates logical operations into the manager's argument syntax, and
// delegates the actual work to the manager binary.
package nodepm

// PackageManagerName identifies a supported package manager.
type PackageManagerName string

const (
	NPM  PackageManagerName = "npm"
	Yarn PackageManagerName = "yarn"
	Pnpm PackageManagerName = "pnpm"
	Bun  PackageManagerName = "bun"
)

// KnownManagers lists every supported manager name in a stable order.
func KnownManagers() []PackageManagerName {
	return []PackageManagerName{NPM, Yarn, Pnpm, Bun}
}

// IsKnownManager reports whether name is one of the supported managers.
func IsKnownManager(name string) bool {
	switch PackageManagerName(name) {
	case NPM, Yarn, Pnpm, Bun:
		return true
	}
	return false
}

// PackageManager describes a detected (or explicitly supplied) package
// manager. Immutable once detected; detection runs per call unless the
// caller supplies one through Options.
type PackageManager struct {
	// Name is the manager identity.
	Name PackageManagerName
	// Command is the executable launched for every operation. Equal to
	// Name for all currently supported managers.
	Command string
	// MajorVersion is the manager's major version ("1", "9", ...).
	// Empty when it could not be determined.
	MajorVersion string
	// Lockfile is the signal file that identified the manager, relative
	// to the project directory. Empty when detection came from the
	// manifest packageManager field or an explicit override.
	Lockfile string
}

// newPackageManager builds a PackageManager whose launch command matches
// the manager name.
func newPackageManager(name PackageManagerName) *PackageManager {
	return &PackageManager{Name: name, Command: string(name)}
}

// ManagerByName builds a PackageManager for an explicitly named manager,
// bypassing detection. MajorVersion is left empty, so yarn is treated as
// berry for argument synthesis.
func ManagerByName(name string) (*PackageManager, error) {
	if !IsKnownManager(name) {
		return nil, &UnknownManagerError{Name: name}
	}
	return newPackageManager(PackageManagerName(name)), nil
}
