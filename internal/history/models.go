package history

import (
	"time"

	"audioconv/internal/conversion"
)

// Run is one recorded batch.
type Run struct {
	ID         string
	Format     string
	InputDir   string
	OutputDir  string
	Total      int
	Succeeded  int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the batch wall-clock time.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// FileResult is the recorded outcome of one file within a run.
type FileResult struct {
	RunID      string
	Input      string
	Output     string
	State      conversion.State
	Diagnostic string
	Duration   time.Duration
}
