package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"audioconv/internal/conversion"
	"audioconv/internal/logging"
	"audioconv/internal/media/audio"
	"audioconv/internal/progress"
	"audioconv/internal/services"
)

// DefaultWorkers is the concurrency used when Options.Workers is zero.
const DefaultWorkers = 16

// Options configures a Dispatcher.
type Options struct {
	OutputDir string
	Format    audio.Target
	Workers   int
	Converter conversion.Converter
	Progress  progress.Reporter
	Logger    *slog.Logger
	// RunID identifies the batch; a random UUID is used when empty.
	RunID string
}

// Dispatcher runs a batch of conversions with bounded concurrency.
type Dispatcher struct {
	outputDir string
	format    audio.Target
	workers   int
	converter conversion.Converter
	progress  progress.Reporter
	logger    *slog.Logger
	runID     string
}

// New validates opts and returns a Dispatcher.
func New(opts Options) (*Dispatcher, error) {
	if opts.Converter == nil {
		return nil, errors.New("batch: converter is required")
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, errors.New("batch: output directory is required")
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("batch: workers must be positive, got %d", opts.Workers)
	}
	format := opts.Format
	if format == "" {
		format = audio.DefaultTarget
	}
	if _, err := audio.ParseTarget(string(format)); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	d := &Dispatcher{
		outputDir: opts.OutputDir,
		format:    format,
		workers:   opts.Workers,
		converter: opts.Converter,
		progress:  opts.Progress,
		logger:    opts.Logger,
		runID:     strings.TrimSpace(opts.RunID),
	}
	if d.workers == 0 {
		d.workers = DefaultWorkers
	}
	if d.progress == nil {
		d.progress = progress.Nop{}
	}
	if d.logger == nil {
		d.logger = logging.NewNop()
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	d.logger = logging.NewComponentLogger(d.logger, "batch")
	return d, nil
}

// RunID returns the identifier attached to this batch.
func (d *Dispatcher) RunID() string {
	return d.runID
}

// Workers returns the configured concurrency limit.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Tasks builds one task per input, in input order.
func (d *Dispatcher) Tasks(inputs []string) []conversion.Task {
	tasks := make([]conversion.Task, 0, len(inputs))
	for _, input := range inputs {
		tasks = append(tasks, conversion.NewTask(input, d.outputDir, d.format))
	}
	return tasks
}

// Run converts every input and blocks until each task has a result. Once ctx
// is canceled, running tools are killed and queued tasks fail without
// starting, so the summary still accounts for every input.
func (d *Dispatcher) Run(ctx context.Context, inputs []string) Summary {
	ctx = services.WithRunID(ctx, d.runID)
	logger := logging.WithContext(ctx, d.logger)
	tasks := d.Tasks(inputs)

	summary := Summary{
		RunID:     d.runID,
		Format:    d.format,
		OutputDir: d.outputDir,
		Total:     len(tasks),
		Results:   make([]conversion.Result, 0, len(tasks)),
		StartedAt: time.Now(),
	}

	d.progress.Start(len(tasks))
	defer d.progress.Finish()

	if len(tasks) == 0 {
		summary.FinishedAt = time.Now()
		return summary
	}

	workers := min(d.workers, len(tasks))
	logger.Info("batch started",
		logging.Int("tasks", len(tasks)),
		logging.Int("workers", workers),
		logging.String(logging.FieldFormat, string(d.format)),
	)

	queue := make(chan conversion.Task)
	results := make(chan conversion.Result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range queue {
				results <- d.convert(ctx, task)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, task := range tasks {
			queue <- task
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		summary.record(result)
		d.progress.Advance(result)
		if !result.Succeeded() {
			logger.Error("conversion failed",
				logging.String(logging.FieldInput, result.Task.Input),
				logging.String("diagnostic", result.Diagnostic()),
			)
		}
	}

	summary.FinishedAt = time.Now()
	logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Duration()),
	)
	return summary
}

// convert shields the batch from a misbehaving converter.
func (d *Dispatcher) convert(ctx context.Context, task conversion.Task) (result conversion.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = conversion.Result{
				Task:  task,
				State: conversion.StateFailed,
				Err:   services.Wrap(services.ErrConversion, "convert", task.Input, fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	result = d.converter.Convert(ctx, task)
	result.Task = task
	if !result.State.Terminal() {
		result.State = conversion.StateFailed
		if result.Err == nil {
			result.Err = services.Wrap(services.ErrConversion, "convert", task.Input, errors.New("no terminal state reported"))
		}
	}
	return result
}
