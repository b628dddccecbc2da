package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// agentReport is the JSON shape of the agent command output.
type agentReport struct {
	Manager      string   `json:"manager"`
	Command      string   `json:"command"`
	MajorVersion string   `json:"majorVersion,omitempty"`
	Lockfile     string   `json:"lockfile,omitempty"`
	Workspaces   []string `json:"workspaces,omitempty"`
}

// NewAgentCmd creates the agent command
func NewAgentCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		flags      operationFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Show which package manager governs the project",
		Long:  `Detect the package manager for the project directory and report its identity, version, the signal that identified it, and any declared workspaces.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(&flags, log)
			if err != nil {
				return err
			}

			ctx, cancel := operationContext(&flags)
			defer cancel()

			opts, err = nodepm.ResolveOptions(ctx, opts)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			pm := opts.PackageManager

			workspaces, err := nodepm.Workspaces(ctx, opts)
			if err != nil {
				log.Warn().Err(err).Msg("cannot read workspaces")
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(agentReport{
					Manager:      string(pm.Name),
					Command:      pm.Command,
					MajorVersion: pm.MajorVersion,
					Lockfile:     pm.Lockfile,
					Workspaces:   workspaces,
				})
			}

			ui.PrintKeyValue("Manager", ui.ColorizeManager(string(pm.Name)))
			ui.PrintKeyValue("Command", pm.Command)
			if pm.MajorVersion != "" {
				ui.PrintKeyValue("Major version", pm.MajorVersion)
			}
			if pm.Lockfile != "" {
				ui.PrintKeyValue("Detected from", pm.Lockfile)
			} else {
				ui.PrintKeyValue("Detected from", "packageManager field or override")
			}
			if len(workspaces) > 0 {
				fmt.Fprintln(os.Stdout)
				ui.PrintSubheader("Workspaces")
				ui.PrintList(workspaces)
			}

			return nil
		},
	}

	registerOperationFlags(cmd, &flags, cfg)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}
