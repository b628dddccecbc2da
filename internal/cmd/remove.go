package cmd

import (
	"fmt"
	"time"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags     operationFlags
		dev       bool
		global    bool
		workspace string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:     "remove [package]",
		Aliases: []string{"rm", "uninstall"},
		Short:   "Remove a dependency",
		Long:    `Remove a single dependency from the project, delegating to the detected package manager.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes {
				// promptui answers any non-"y" with an error, so both
				// paths mean the user declined.
				confirmed, err := ui.ConfirmPrompt(fmt.Sprintf("Remove %s", name))
				if err != nil || !confirmed {
					ui.PrintInfo("Removal cancelled")
					return nil
				}
			}

			opts, err := buildOptions(&flags, log)
			if err != nil {
				return err
			}
			opts.Dev = dev
			opts.Global = global
			opts.Workspace = workspace

			ctx, cancel := operationContext(&flags)
			defer cancel()

			log.Info().
				Str("package", name).
				Bool("global", global).
				Str("workspace", workspace).
				Msg("removing dependency")

			started := time.Now()
			removeErr := nodepm.RemoveDependency(ctx, name, opts)

			var argv []string
			if opts.PackageManager != nil {
				argv = nodepm.RemoveArgs(opts.PackageManager, name, opts)
			}
			recordHistory(cfg, log, "remove", opts, argv, []string{name}, removeErr, started)

			if removeErr != nil {
				ui.PrintError("remove failed: %v", removeErr)
				return removeErr
			}

			ui.PrintSuccess("Removed %s with %s", name, ui.ColorizeManager(string(opts.PackageManager.Name)))
			return nil
		},
	}

	registerOperationFlags(cmd, &flags, cfg)
	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "remove from devDependencies")
	cmd.Flags().BoolVarP(&global, "global", "g", false, "remove from the manager's global store")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "target a workspace sub-project")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
