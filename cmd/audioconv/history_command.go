package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"audioconv/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "Run history is disabled; set enabled = true under [history] in the config file")
				return nil
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if runID != "" {
				files, err := store.Files(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return errors.New("no files recorded for run " + runID)
				}
				fmt.Fprintln(out, renderRunFiles(files))
				return nil
			}

			if limit <= 0 {
				limit = cfg.History.Limit
			}
			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderRuns(runs))
			fmt.Fprintf(out, "Showing %s\n", plural(len(runs), "run"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to show (default from config)")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-file results for a run id")
	return cmd
}

func renderRuns(runs []history.Run) string {
	headers := []string{"Run", "Started", "Format", "OK", "Failed", "Total", "Elapsed", "Output"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			formatTimestamp(run.StartedAt),
			run.Format,
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
			strconv.Itoa(run.Total),
			formatElapsed(run.Duration()),
			run.OutputDir,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func renderRunFiles(files []history.FileResult) string {
	headers := []string{"Input", "Output", "State", "Elapsed", "Error"}
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Input,
			f.Output,
			string(f.State),
			formatElapsed(f.Duration),
			firstLine(f.Diagnostic, maxDiagnosticWidth),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
}
