package preflight

import (
	"audioconv/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckInputDirectory("Input directory", cfg.Conversion.InputDir),
		CheckOutputDirectory("Output directory", cfg.Conversion.OutputDir),
		CheckOutputDirectory("State directory", cfg.Paths.StateDir),
	}
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
