package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/history"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check package managers and local state",
		Long:  `Check which package managers are available on PATH, their versions, and the health of nodepm's own directories and history journal.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintHeader("System Diagnostics")
			fmt.Println()

			var issues []string
			var warnings []string

			runner := nodepm.NewOSCommandRunner()
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// 1. Package managers on PATH
			ui.PrintSubheader("Package Managers")
			found := 0
			for _, name := range nodepm.KnownManagers() {
				command := string(name)
				if !runner.CommandExists(command) {
					ui.PrintInfo("%s: not found", ui.ColorizeManager(command))
					continue
				}
				found++

				version, err := runner.RunCommand(ctx, command, "--version")
				if err != nil {
					ui.PrintWarning("%s: found, but --version failed: %v", command, err)
					warnings = append(warnings, fmt.Sprintf("%s does not answer --version", command))
					continue
				}
				ui.PrintSuccess("%s: %s", ui.ColorizeManager(command), strings.TrimSpace(version))
			}
			if found == 0 {
				issues = append(issues, "no package manager found on PATH (install npm, yarn, pnpm, or bun)")
			}

			fmt.Println()

			// 2. Directory structure
			ui.PrintSubheader("Directory Structure")
			dirs := []struct {
				path string
				name string
			}{
				{cfg.Paths.DataDir, "Data directory"},
				{filepath.Dir(cfg.Paths.HistoryFile), "History directory"},
				{filepath.Dir(cfg.Paths.LogFile), "Log directory"},
			}

			for _, dir := range dirs {
				if checkDirectory(dir.path) {
					ui.PrintSuccess("%s: %s", dir.name, dir.path)
				} else {
					ui.PrintError("%s: NOT ACCESSIBLE (%s)", dir.name, dir.path)
					issues = append(issues, fmt.Sprintf("Directory not accessible: %s", dir.path))
				}
			}

			fmt.Println()

			// 3. History journal
			ui.PrintSubheader("History Journal")
			store, err := history.Open(ctx, cfg.Paths.HistoryFile)
			if err != nil {
				ui.PrintError("Journal: NOT ACCESSIBLE")
				issues = append(issues, fmt.Sprintf("Cannot open history journal: %v", err))
			} else {
				ui.PrintSuccess("Journal: accessible (%s)", cfg.Paths.HistoryFile)
				records, err := store.List(ctx, 0)
				if err != nil {
					ui.PrintWarning("Cannot list journal entries: %v", err)
					warnings = append(warnings, "Cannot list journal entries")
				} else {
					ui.PrintInfo("Recorded operations: %d", len(records))
				}
				store.Close()
			}

			fmt.Println()

			// Summary
			ui.PrintHeader("Summary")
			fmt.Println()

			if len(issues) == 0 {
				ui.PrintSuccess("All critical checks passed!")
			} else {
				ui.PrintError("Found %d issue(s):", len(issues))
				ui.PrintList(issues)
				fmt.Println()
			}

			if len(warnings) > 0 {
				ui.PrintWarning("Found %d warning(s):", len(warnings))
				ui.PrintList(warnings)
			}

			fmt.Println()

			if len(issues) > 0 {
				return fmt.Errorf("system check failed with %d issue(s)", len(issues))
			}

			return nil
		},
	}

	return cmd
}

// checkDirectory checks if a directory exists and is writable
func checkDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// Try to create if it doesn't exist
		if os.IsNotExist(err) {
			return os.MkdirAll(path, 0755) == nil
		}
		return false
	}

	if !info.IsDir() {
		return false
	}

	// Check if writable
	testFile := filepath.Join(path, ".nodepm-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return false
	}
	os.Remove(testFile)

	return true
}
