package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"audioconv/internal/batch"
	"audioconv/internal/history"
	"audioconv/internal/logging"
	"audioconv/internal/progress"
)

func runConvert(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	logger, err := logging.NewFromConfig(cfg, stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	job := &batch.Job{
		Config:   cfg,
		Progress: progress.New(stderr, logger),
		Logger:   logger,
		Out:      cmd.OutOrStdout(),
	}
	if cfg.History.Enabled {
		store := openHistory(cfg.HistoryDBPath(), logger)
		if store != nil {
			defer store.Close()
			job.Recorder = store
		}
	}

	summary, err := job.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Conversion completed!")
	fmt.Fprintln(out, renderSummary(summary))
	if summary.HasFailures() {
		fmt.Fprintln(out, renderFailures(summary))
	}

	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if summary.HasFailures() && cfg.Conversion.FailOnError {
		return fmt.Errorf("%d of %d conversions failed", summary.Failed, summary.Total)
	}
	return nil
}

// openHistory returns nil when the database cannot be opened; history is
// never worth failing a batch over.
func openHistory(path string, logger *slog.Logger) *history.Store {
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("run history unavailable",
			logging.String("path", path),
			logging.Error(err),
		)
		return nil
	}
	return store
}
