package cmd

import (
	"strings"
	"time"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command
func NewAddCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags     operationFlags
		dev       bool
		global    bool
		workspace string
	)

	cmd := &cobra.Command{
		Use:   "add [packages...]",
		Short: "Add one or more dependencies",
		Long:  `Add dependencies to the project, delegating to the detected package manager. Version specifiers like left-pad@1.3.0 are passed through untouched.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
				Strs("packages", args).
				Bool("dev", dev).
				Bool("global", global).
				Str("workspace", workspace).
				Msg("adding dependencies")

			var spinner *ui.Spinner
			if flags.silent {
				spinner = ui.NewSpinner("Adding " + strings.Join(args, ", ") + "...")
			}

			started := time.Now()
			addErr := nodepm.AddDependencies(ctx, args, opts)
			if spinner != nil {
				spinner.Stop()
			}

			var argv []string
			if opts.PackageManager != nil {
				argv = nodepm.AddArgs(opts.PackageManager, args, opts)
			}
			recordHistory(cfg, log, "add", opts, argv, args, addErr, started)

			if addErr != nil {
				ui.PrintError("add failed: %v", addErr)
				return addErr
			}

			target := "dependencies"
			if dev {
				target = "devDependencies"
			}
			ui.PrintSuccess("Added %s to %s with %s", strings.Join(args, ", "), target, ui.ColorizeManager(string(opts.PackageManager.Name)))
			return nil
		},
	}

	registerOperationFlags(cmd, &flags, cfg)
	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "add to devDependencies")
	cmd.Flags().BoolVarP(&global, "global", "g", false, "add to the manager's global store")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "target a workspace sub-project")

	return cmd
}
