package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"audioconv/internal/config"
	"audioconv/internal/conversion"
	"audioconv/internal/discover"
	"audioconv/internal/fileutil"
	"audioconv/internal/logging"
	"audioconv/internal/outputlock"
	"audioconv/internal/progress"
)

// Recorder persists finished batches.
type Recorder interface {
	Record(ctx context.Context, summary Summary) error
}

// Job runs one complete batch described by a config.
type Job struct {
	Config *config.Config
	// Converter defaults to a Runner built from Config.
	Converter conversion.Converter
	Progress  progress.Reporter
	Logger    *slog.Logger
	// Recorder is optional; failures to record are logged, not returned.
	Recorder Recorder
	// Out receives the "Found N files" announcement.
	Out io.Writer
	RunID string
}

// NewConverter builds the external tool runner described by cfg.
func NewConverter(cfg *config.Config, logger *slog.Logger) *conversion.Runner {
	opts := []conversion.Option{
		conversion.WithArgs(cfg.Conversion.ToolArgs),
		conversion.WithLogger(logger),
	}
	if cfg.Conversion.VerifyOutput {
		opts = append(opts, conversion.WithVerifier(conversion.ProbeVerifier{Binary: cfg.Conversion.FFprobe}))
	}
	return conversion.NewRunner(cfg.Conversion.Tool, opts...)
}

// Run prepares the output directory, discovers inputs, and converts them.
// Errors returned here are fatal setup failures; per-file failures are
// reported through the Summary.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	cfg := j.Config
	logger := j.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := fileutil.EnsureDir(cfg.Conversion.OutputDir); err != nil {
		return Summary{}, err
	}

	lock, err := outputlock.Acquire(cfg.LockDir(), cfg.Conversion.OutputDir)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release output lock failed", logging.Error(err))
		}
	}()

	inputs, err := discover.Files(cfg.Conversion.InputDir)
	if err != nil {
		return Summary{}, err
	}
	if j.Out != nil {
		fmt.Fprintf(j.Out, "Found %d files to convert\n", len(inputs))
	}

	converter := j.Converter
	if converter == nil {
		converter = NewConverter(cfg, logger)
	}
	dispatcher, err := New(Options{
		OutputDir: cfg.Conversion.OutputDir,
		Format:    cfg.Target(),
		Workers:   cfg.Conversion.Workers,
		Converter: converter,
		Progress:  j.Progress,
		Logger:    logger,
		RunID:     j.RunID,
	})
	if err != nil {
		return Summary{}, err
	}

	summary := dispatcher.Run(ctx, inputs)
	summary.InputDir = cfg.Conversion.InputDir

	if j.Recorder != nil {
		if err := j.Recorder.Record(context.WithoutCancel(ctx), summary); err != nil {
			logger.Warn("record run history failed",
				logging.String(logging.FieldRunID, summary.RunID),
				logging.Error(err),
			)
		}
	}
	return summary, nil
}
