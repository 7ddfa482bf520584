// Package progress renders batch completion progress.
//
// On an interactive terminal a live bar advances once per finished file; when
// output is redirected, sampled log lines replace the bar so log files are not
// flooded with carriage-return frames.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"audioconv/internal/conversion"
	"audioconv/internal/logging"
)

// Reporter receives batch progress events. Calls come from a single goroutine.
type Reporter interface {
	Start(total int)
	Advance(result conversion.Result)
	Finish()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New picks a bar for terminals and sampled log lines otherwise.
func New(w io.Writer, logger *slog.Logger) Reporter {
	if IsTerminal(w) {
		return NewBar(w)
	}
	return NewLog(logger)
}

// Bar draws a progress bar.
type Bar struct {
	w        io.Writer
	bar      *progressbar.ProgressBar
	advanced int
}

// NewBar returns a bar reporter writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) Start(total int) {
	b.advanced = 0
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(b.w)
		}),
	)
}

func (b *Bar) Advance(conversion.Result) {
	b.advanced++
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}

// Advanced returns how many completions the bar has seen.
func (b *Bar) Advanced() int {
	return b.advanced
}

// Log reports progress as structured log lines at 10% steps.
type Log struct {
	logger   *slog.Logger
	sampler  *logging.ProgressSampler
	total    int
	advanced int
	failed   int
}

// NewLog returns a log reporter.
func NewLog(logger *slog.Logger) *Log {
	return &Log{
		logger:  logging.NewComponentLogger(logger, "progress"),
		sampler: logging.NewProgressSampler(10),
	}
}

func (l *Log) Start(total int) {
	l.total = total
	l.advanced = 0
	l.failed = 0
	l.sampler.Reset()
}

func (l *Log) Advance(result conversion.Result) {
	l.advanced++
	if !result.Succeeded() {
		l.failed++
	}
	if l.sampler.ShouldLog(l.advanced, l.total) {
		l.logger.Info("conversion progress",
			logging.Int("completed", l.advanced),
			logging.Int("total", l.total),
			logging.Int("failed", l.failed),
		)
	}
}

func (l *Log) Finish() {}

// Advanced returns how many completions were reported.
func (l *Log) Advanced() int {
	return l.advanced
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int) {}

func (Nop) Advance(conversion.Result) {}

func (Nop) Finish() {}
