package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// StubOptions controls the behaviour of a stub conversion tool.
type StubOptions struct {
	// FailMatch makes the stub exit 1 for inputs whose path contains it.
	FailMatch string
	// Stderr is written to standard error when the stub fails.
	Stderr string
	// SleepSeconds delays every conversion.
	SleepSeconds int
	// SkipOutput exits 0 without writing the output file.
	SkipOutput bool
}

// RequireShell skips tests that depend on /bin/sh stub scripts.
func RequireShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools are POSIX shell scripts")
	}
}

// WriteStubTool writes an executable stand-in for ffmpeg into dir and returns
// its path. The stub understands "[flags...] -i <input> <output>" and writes a
// small text file to <output>.
func WriteStubTool(t testing.TB, dir string, opts StubOptions) string {
	t.Helper()
	RequireShell(t)
	MkdirAll(t, dir)

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	script.WriteString("in=\"\"\nout=\"\"\n")
	script.WriteString("while [ $# -gt 0 ]; do\n")
	script.WriteString("  if [ \"$1\" = \"-i\" ]; then in=\"$2\"; shift 2; continue; fi\n")
	script.WriteString("  out=\"$1\"; shift\n")
	script.WriteString("done\n")
	if opts.SleepSeconds > 0 {
		fmt.Fprintf(&script, "sleep %d\n", opts.SleepSeconds)
	}
	if opts.FailMatch != "" {
		stderr := opts.Stderr
		if stderr == "" {
			stderr = "stub: invalid data found when processing input"
		}
		fmt.Fprintf(&script, "case \"$in\" in\n  *%s*) echo %s >&2; exit 1;;\nesac\n", opts.FailMatch, shellQuote(stderr))
	}
	script.WriteString("echo \"stub: converting $in\"\n")
	if !opts.SkipOutput {
		script.WriteString("printf 'converted from %s\\n' \"$in\" > \"$out\"\n")
	}
	script.WriteString("exit 0\n")

	path := filepath.Join(dir, "ffmpeg-stub")
	if err := os.WriteFile(path, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write stub tool: %v", err)
	}
	return path
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
