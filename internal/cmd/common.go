package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/quantmind-br/nodepm"
	"github.com/quantmind-br/nodepm/internal/config"
	"github.com/quantmind-br/nodepm/internal/history"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// operationFlags are the flags shared by every command that delegates to a
// package manager.
type operationFlags struct {
	cwd         string
	silent      bool
	manager     string
	timeoutSecs int
}

// registerOperationFlags wires the shared flags, seeding defaults from the
// loaded configuration.
func registerOperationFlags(cmd *cobra.Command, flags *operationFlags, cfg *config.Config) {
	cmd.Flags().StringVarP(&flags.cwd, "cwd", "C", "", "project directory (default: current directory)")
	cmd.Flags().BoolVar(&flags.silent, "silent", cfg.Defaults.Silent, "suppress package manager output")
	cmd.Flags().StringVar(&flags.manager, "pm", cfg.Defaults.PackageManager, "force a package manager (npm, yarn, pnpm, bun) instead of detecting")
	cmd.Flags().IntVar(&flags.timeoutSecs, "timeout", cfg.Defaults.TimeoutSecs, "subprocess timeout in seconds")
}

// buildOptions converts CLI flags into library options. A manager override
// given by flag or config bypasses filesystem detection.
func buildOptions(flags *operationFlags, log *zerolog.Logger) (*nodepm.Options, error) {
	opts := &nodepm.Options{
		Cwd:    flags.cwd,
		Silent: flags.silent,
		Logger: log,
	}

	if flags.manager != "" {
		pm, err := nodepm.ManagerByName(flags.manager)
		if err != nil {
			return nil, suggestManager(flags.manager, err)
		}
		opts.PackageManager = pm
	}

	return opts, nil
}

// suggestManager decorates an unknown-manager error with the closest
// supported name when the typo is recognizable.
func suggestManager(name string, err error) error {
	var unknown *nodepm.UnknownManagerError
	if !errors.As(err, &unknown) {
		return err
	}

	best := ""
	bestDistance := 3 // anything further is not a typo
	for _, known := range nodepm.KnownManagers() {
		candidate := string(known)
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), candidate)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if best != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, best)
	}
	return err
}

// operationContext bounds a delegated subprocess.
func operationContext(flags *operationFlags) (context.Context, context.CancelFunc) {
	if flags.timeoutSecs <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(flags.timeoutSecs)*time.Second)
}

// recordHistory appends a journal entry for a completed operation. Journal
// failures are logged but never fail the operation itself.
func recordHistory(cfg *config.Config, log *zerolog.Logger, operation string, opts *nodepm.Options, args, packages []string, opErr error, started time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := history.Open(ctx, cfg.Paths.HistoryFile)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Paths.HistoryFile).Msg("cannot open history journal")
		return
	}
	defer store.Close()

	manager := ""
	if opts != nil && opts.PackageManager != nil {
		manager = string(opts.PackageManager.Name)
	}
	cwd := ""
	if opts != nil {
		cwd = opts.Cwd
	}

	rec := &history.Record{
		OperationID: uuid.NewString(),
		Operation:   operation,
		Manager:     manager,
		Args:        args,
		Packages:    packages,
		Cwd:         cwd,
		ExitCode:    exitCodeOf(opErr),
		Duration:    time.Since(started),
		CreatedAt:   time.Now().UTC(),
	}

	if err := store.Append(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("cannot append to history journal")
	}
}

// exitCodeOf maps an operation error to the journal exit code. A nil error
// is 0; a failed subprocess carries its real exit code; everything else
// (detection failures, spawn errors) is recorded as 1.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var execErr *nodepm.ExecutionError
	if errors.As(err, &execErr) {
		return execErr.ExitCode
	}
	return 1
}
