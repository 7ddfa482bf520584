package conversion

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"audioconv/internal/logging"
	"audioconv/internal/services"
)

// killWaitDelay bounds how long a canceled tool may hold its output pipes open.
const killWaitDelay = 2 * time.Second

// Converter converts a single task. Implementations must always return a
// terminal Result and never panic on tool failure.
type Converter interface {
	Convert(ctx context.Context, task Task) Result
}

// Verifier inspects a produced output file.
type Verifier interface {
	Verify(ctx context.Context, path string) error
}

// Runner invokes an external tool once per task.
type Runner struct {
	tool     string
	args     []string
	verifier Verifier
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithArgs sets flags passed ahead of "-i <input> <output>".
func WithArgs(args []string) Option {
	return func(r *Runner) {
		r.args = append([]string(nil), args...)
	}
}

// WithVerifier inspects every successful output before reporting success.
func WithVerifier(v Verifier) Option {
	return func(r *Runner) {
		r.verifier = v
	}
}

// WithLogger sets the logger used for per-task debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner constructs a Runner for the given tool binary.
func NewRunner(tool string, opts ...Option) *Runner {
	r := &Runner{tool: strings.TrimSpace(tool)}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = logging.NewComponentLogger(r.logger, "convert")
	return r
}

// Tool returns the configured tool binary.
func (r *Runner) Tool() string {
	return r.tool
}

// BuildArgs returns the argument list for task, excluding the tool itself.
func (r *Runner) BuildArgs(task Task) []string {
	args := make([]string, 0, len(r.args)+3)
	args = append(args, r.args...)
	args = append(args, "-i", task.Input, task.Output)
	return args
}

// Convert runs the tool for task and classifies the outcome.
func (r *Runner) Convert(ctx context.Context, task Task) Result {
	start := time.Now()
	result := Result{Task: task, State: StateRunning}
	logger := logging.WithContext(services.WithInput(ctx, task.Input), r.logger)

	if err := ctx.Err(); err != nil {
		return r.finish(result, start, services.Wrap(services.ErrConversion, "convert", "not started", err))
	}

	args := r.BuildArgs(task)
	logger.Debug("starting conversion", logging.String("tool", r.tool), logging.Strings("args", args))

	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.WaitDelay = killWaitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			err = services.Wrap(services.ErrConversion, "convert", "canceled", ctx.Err())
		case errors.As(err, &exitErr):
			err = services.Wrap(services.ErrConversion, "convert", task.Input, &ToolError{
				Tool:     filepath.Base(r.tool),
				ExitCode: exitErr.ExitCode(),
				Stderr:   result.Stderr,
			})
		default:
			err = services.Wrap(services.ErrToolLaunch, "convert", "start "+r.tool, err)
		}
		return r.finish(result, start, err)
	}

	if r.verifier != nil {
		if verr := r.verifier.Verify(ctx, task.Output); verr != nil {
			return r.finish(result, start, services.Wrap(services.ErrVerification, "verify", task.Output, verr))
		}
	}

	logger.Debug("conversion finished", logging.String(logging.FieldOutput, task.Output))
	return r.finish(result, start, nil)
}

func (r *Runner) finish(result Result, start time.Time, err error) Result {
	result.Duration = time.Since(start)
	result.Err = err
	if err != nil {
		result.State = StateFailed
	} else {
		result.State = StateSucceeded
	}
	return result
}
