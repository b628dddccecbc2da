package cmd

import (
	"time"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewEnsureCmd creates the ensure command
func NewEnsureCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags     operationFlags
		dev       bool
		workspace string
	)

	cmd := &cobra.Command{
		Use:   "ensure [package]",
		Short: "Install a dependency only if it is missing",
		Long:  `Check whether a dependency is already present (declared in package.json or resolvable under node_modules) and add it only when it is not.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			opts, err := buildOptions(&flags, log)
			if err != nil {
				return err
			}
			opts.Dev = dev
			opts.Workspace = workspace

			ctx, cancel := operationContext(&flags)
			defer cancel()

			started := time.Now()
			already, ensureErr := nodepm.EnsureDependencyInstalled(ctx, name, opts)

			// Nothing ran when the dependency was already there, so only
			// real delegations reach the journal.
			if !already {
				var argv []string
				if opts.PackageManager != nil {
					argv = nodepm.AddArgs(opts.PackageManager, []string{name}, opts)
				}
				recordHistory(cfg, log, "ensure", opts, argv, []string{name}, ensureErr, started)
			}

			if ensureErr != nil {
				ui.PrintError("ensure failed: %v", ensureErr)
				return ensureErr
			}

			if already {
				ui.PrintInfo("%s is already installed", name)
			} else {
				ui.PrintSuccess("Installed %s with %s", name, ui.ColorizeManager(string(opts.PackageManager.Name)))
			}
			return nil
		},
	}

	registerOperationFlags(cmd, &flags, cfg)
	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "add to devDependencies when missing")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "target a workspace sub-project")

	return cmd
}
