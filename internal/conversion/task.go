package conversion

import (
	"path/filepath"
	"time"

	"audioconv/internal/fileutil"
	"audioconv/internal/media/audio"
)

// Task is a single immutable unit of conversion work.
type Task struct {
	Input  string
	Output string
	Format audio.Target
}

// OutputPath returns outputDir/<input base name without extension>.<format>.
// Inputs sharing a base name map to the same output path.
func OutputPath(input, outputDir string, format audio.Target) string {
	return filepath.Join(outputDir, fileutil.ReplaceExt(input, string(format)))
}

// NewTask builds the task converting input into outputDir.
func NewTask(input, outputDir string, format audio.Target) Task {
	return Task{
		Input:  input,
		Output: OutputPath(input, outputDir, format),
		Format: format,
	}
}

// State is the lifecycle position of a task.
type State string

const (
	StateSubmitted State = "submitted"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Result is the outcome of one task. Exactly one is produced per task.
type Result struct {
	Task     Task
	State    State
	Err      error
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Succeeded reports whether the conversion completed successfully.
func (r Result) Succeeded() bool {
	return r.State == StateSucceeded
}

// Diagnostic returns the text shown to the user for a failed task.
func (r Result) Diagnostic() string {
	if r.Succeeded() || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
