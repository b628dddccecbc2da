package cmd

import (
	"time"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command
func NewInstallCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags  operationFlags
		frozen bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install all dependencies",
		Long:  `Install every dependency declared by the project, delegating to the detected package manager.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(&flags, log)
			if err != nil {
				return err
			}
			opts.FrozenLockfile = frozen

			ctx, cancel := operationContext(&flags)
			defer cancel()

			log.Info().
				Str("cwd", flags.cwd).
				Bool("frozen_lockfile", frozen).
				Msg("installing dependencies")

			var spinner *ui.Spinner
			if flags.silent {
				spinner = ui.NewSpinner("Installing dependencies...")
			}

			started := time.Now()
			installErr := nodepm.InstallDependencies(ctx, opts)
			if spinner != nil {
				spinner.Stop()
			}

			var argv []string
			if opts.PackageManager != nil {
				argv = nodepm.InstallArgs(opts.PackageManager, frozen)
			}
			recordHistory(cfg, log, "install", opts, argv, nil, installErr, started)

			if installErr != nil {
				ui.PrintError("installation failed: %v", installErr)
				return installErr
			}

			ui.PrintSuccess("Dependencies installed with %s", ui.ColorizeManager(string(opts.PackageManager.Name)))
			return nil
		},
	}

	registerOperationFlags(cmd, &flags, cfg)
	cmd.Flags().BoolVar(&frozen, "frozen-lockfile", false, "fail instead of updating the lockfile")

	return cmd
}
