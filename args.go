package nodepm

// Argument synthesis. Pure translation of a logical intent into the
// manager-specific argument list; no I/O happens here. Arguments are
// appended conditionally so no empty tokens ever need filtering.

// addFlags carries the switches that shape an add or remove invocation.
type addFlags struct {
	dev       bool
	global    bool
	workspace string
}

func flagsFrom(opts *Options) addFlags {
	if opts == nil {
		return addFlags{}
	}
	return addFlags{dev: opts.Dev, global: opts.Global, workspace: opts.Workspace}
}

// InstallArgs returns the argument list a full dependency install would
// delegate to the manager binary.
func InstallArgs(pm *PackageManager, frozenLockfile bool) []string {
	if !frozenLockfile {
		return []string{"install"}
	}
	switch pm.Name {
	case NPM:
		return []string{"ci"}
	case Yarn:
		return []string{"install", "--immutable"}
	default: // pnpm, bun
		return []string{"install", "--frozen-lockfile"}
	}
}

// AddArgs returns the argument list for adding names. Only the Dev, Global,
// and Workspace fields of opts are consulted; opts may be nil.
func AddArgs(pm *PackageManager, names []string, opts *Options) []string {
	return addArgs(pm, names, flagsFrom(opts))
}

func addArgs(pm *PackageManager, names []string, flags addFlags) []string {
	if pm.Name == Yarn {
		args := workspaceArgs(pm.Name, flags.workspace)
		// yarn classic only; berry dropped global add.
		if flags.global && pm.MajorVersion == "1" {
			args = append(args, "global")
		}
		args = append(args, "add")
		if flags.dev {
			args = append(args, "-D")
		}
		return append(args, names...)
	}

	verb := "add"
	if pm.Name == NPM {
		verb = "install"
	}
	args := append([]string{verb}, workspaceArgs(pm.Name, flags.workspace)...)
	if flags.dev {
		args = append(args, "-D")
	}
	if flags.global {
		args = append(args, "-g")
	}
	return append(args, names...)
}

// RemoveArgs returns the argument list for removing a single dependency.
// Mirrors AddArgs.
func RemoveArgs(pm *PackageManager, name string, opts *Options) []string {
	return removeArgs(pm, name, flagsFrom(opts))
}

func removeArgs(pm *PackageManager, name string, flags addFlags) []string {
	if pm.Name == Yarn {
		var args []string
		if flags.global && pm.MajorVersion == "1" {
			args = append(args, "global")
		}
		args = append(args, workspaceArgs(pm.Name, flags.workspace)...)
		args = append(args, "remove")
		if flags.dev {
			args = append(args, "-D")
		}
		return append(args, name)
	}

	verb := "remove"
	if pm.Name == NPM {
		verb = "uninstall"
	}
	args := append([]string{verb}, workspaceArgs(pm.Name, flags.workspace)...)
	if flags.dev {
		args = append(args, "-D")
	}
	if flags.global {
		args = append(args, "-g")
	}
	return append(args, name)
}

// workspaceArgs returns the manager-specific workspace selector. Empty
// workspace means no selector.
func workspaceArgs(name PackageManagerName, workspace string) []string {
	if workspace == "" {
		return nil
	}
	switch name {
	case Yarn:
		return []string{"workspace", workspace}
	case NPM:
		return []string{"--workspace", workspace}
	default: // pnpm, bun
		return []string{"--filter", workspace}
	}
}
