package cmd

import (
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "nodepm",
		Short:        "JavaScript package manager front end",
		Long:         `A thin front end over npm, yarn, pnpm, and bun that detects which manager governs a project and delegates dependency operations to it.`,
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewInstallCmd(cfg, log))
	cmd.AddCommand(NewAddCmd(cfg, log))
	cmd.AddCommand(NewRemoveCmd(cfg, log))
	cmd.AddCommand(NewEnsureCmd(cfg, log))
	cmd.AddCommand(NewAgentCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewHistoryCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
