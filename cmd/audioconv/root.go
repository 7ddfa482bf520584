package main

import (
	"github.com/spf13/cobra"

	"audioconv/internal/config"
)

type rootFlags struct {
	config      string
	input       string
	output      string
	format      string
	workers     int
	tool        string
	failOnError bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "audioconv",
		Short: "Batch-convert a directory of audio files",
		Long: "audioconv converts every opus, ogg, wav, flac, m4a, mp3, and aac file in the\n" +
			"input directory to the target format using ffmpeg, several files at a time.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			ctx.bindOverrides(cmd)
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVarP(&flags.input, "input", "i", ".", "Directory containing the files to convert")
	pf.StringVarP(&flags.output, "output", "o", "converted", "Directory receiving converted files")
	pf.StringVarP(&flags.format, "format", "f", "mp3", "Target format (mp3, wav, flac, aac)")
	pf.IntVarP(&flags.workers, "thread", "t", 16, "Maximum number of concurrent conversions")
	pf.StringVar(&flags.tool, "tool", "ffmpeg", "External conversion tool")
	pf.BoolVar(&flags.failOnError, "fail-on-error", false, "Exit non-zero when any file fails to convert")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}

func overridesFromFlags(cmd *cobra.Command, flags *rootFlags) config.Overrides {
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("input") {
		o.InputDir = &flags.input
	}
	if changed("output") {
		o.OutputDir = &flags.output
	}
	if changed("format") {
		o.Format = &flags.format
	}
	if changed("thread") {
		o.Workers = &flags.workers
	}
	if changed("tool") {
		o.Tool = &flags.tool
	}
	if changed("fail-on-error") {
		o.FailOnError = &flags.failOnError
	}
	return o
}
