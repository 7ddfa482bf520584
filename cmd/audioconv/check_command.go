package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"audioconv/internal/deps"
	"audioconv/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the conversion tool and directories without converting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := preflight.CheckSystemDeps(cfg)
			results := preflight.RunAll(cfg)

			lines := renderSectionHeader("Dependencies", colorize)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			lines = append(lines, preflightLines(results, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Settings", colorize)...)
			lines = append(lines,
				renderStatusLine("Format", statusInfo, cfg.Conversion.Format, colorize),
				renderStatusLine("Workers", statusInfo, strconv.Itoa(cfg.Conversion.Workers), colorize),
				renderStatusLine("Verify output", statusInfo, yesNo(cfg.Conversion.VerifyOutput), colorize),
				renderStatusLine("Fail on error", statusInfo, yesNo(cfg.Conversion.FailOnError), colorize),
				renderStatusLine("History", statusInfo, yesNo(cfg.History.Enabled), colorize),
			)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if len(deps.MissingRequired(statuses)) > 0 || !preflight.AllPassed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
