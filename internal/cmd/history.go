package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/history"
	"github.com/quantmind-br/nodepm/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
		filter     string
		prune      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded package manager operations",
		Long:  `List the operations nodepm has delegated, newest first, with the manager, arguments, and exit code of each.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			store, err := history.Open(ctx, cfg.Paths.HistoryFile)
			if err != nil {
				ui.PrintError("failed to open history journal: %v", err)
				return fmt.Errorf("open history journal: %w", err)
			}
			defer store.Close()

			if prune > 0 {
				deleted, err := store.Prune(ctx, prune)
				if err != nil {
					ui.PrintError("failed to prune journal: %v", err)
					return fmt.Errorf("prune journal: %w", err)
				}
				ui.PrintSuccess("Pruned %d journal entries, kept the newest %d", deleted, prune)
				return nil
			}

			records, err := store.List(ctx, limit)
			if err != nil {
				ui.PrintError("failed to list journal entries: %v", err)
				return fmt.Errorf("list journal entries: %w", err)
			}

			if filter != "" {
				records = filterRecords(records, filter)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				if filter != "" {
					ui.PrintWarning("No operations match %q", filter)
				} else {
					ui.PrintInfo("No operations recorded yet")
				}
				return nil
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithHeader([]string{"When", "Operation", "Manager", "Command", "Exit", "Duration"}),
				tablewriter.WithAlignment(tw.MakeAlign(6, tw.AlignLeft)),
				tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
			)

			for _, rec := range records {
				table.Append(
					rec.CreatedAt.Local().Format("2006-01-02 15:04"),
					rec.Operation,
					ui.ColorizeManager(rec.Manager),
					rec.Manager+" "+strings.Join(rec.Args, " "),
					fmt.Sprintf("%d", rec.ExitCode),
					rec.Duration.Round(time.Millisecond).String(),
				)
			}

			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&filter, "filter", "", "fuzzy match on operation, manager, or package names")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete all but the newest N entries and exit")

	return cmd
}

// filterRecords keeps records whose operation, manager, or package names
// fuzzily match the filter.
func filterRecords(records []history.Record, filter string) []history.Record {
	kept := make([]history.Record, 0, len(records))
	for _, rec := range records {
		haystack := append([]string{rec.Operation, rec.Manager}, rec.Packages...)
		matched := false
		for _, candidate := range haystack {
			if fuzzy.MatchNormalizedFold(filter, candidate) {
				matched = true
				break
			}
		}
		if matched {
			kept = append(kept, rec)
		}
	}
	return kept
}
