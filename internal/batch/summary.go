package batch

import (
	"time"

	"audioconv/internal/conversion"
	"audioconv/internal/media/audio"
)

// Summary describes a finished batch.
type Summary struct {
	RunID      string
	Format     audio.Target
	InputDir   string
	OutputDir  string
	Total      int
	Succeeded  int
	Failed     int
	Results    []conversion.Result
	StartedAt  time.Time
	FinishedAt time.Time
}

// Completed returns how many tasks reached a terminal state.
func (s Summary) Completed() int {
	return s.Succeeded + s.Failed
}

// HasFailures reports whether any task failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Failures returns failed results in completion order.
func (s Summary) Failures() []conversion.Result {
	var failed []conversion.Result
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Duration returns wall-clock time spent on the batch.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() || s.StartedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

func (s *Summary) record(result conversion.Result) {
	s.Results = append(s.Results, result)
	if result.Succeeded() {
		s.Succeeded++
	} else {
		s.Failed++
	}
}
