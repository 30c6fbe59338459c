package history

import (
	"strings"
	"time"
)

// Status represents the outcome of a sync run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
	StatusRejected  Status = "rejected"
	StatusTimedOut  Status = "timed_out"
)

var allStatuses = []Status{
	StatusRunning,
	StatusCompleted,
	StatusEmpty,
	StatusFailed,
	StatusRejected,
	StatusTimedOut,
}

// ParseStatus converts a user supplied string into a Status.
func ParseStatus(value string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

// AllStatuses returns every known status in display order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Terminal reports whether the run has finished.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// Source identifies which surface started a run.
type Source string

const (
	SourceCLI   Source = "cli"
	SourceBatch Source = "batch"
	SourceAPI   Source = "api"
)

// Run is one recorded sync.
type Run struct {
	ID               string     `json:"id"`
	Source           Source     `json:"source"`
	TranscriptPath   string     `json:"transcript_path,omitempty"`
	LyricsPath       string     `json:"lyrics_path,omitempty"`
	OutputPath       string     `json:"output_path,omitempty"`
	OutputFormat     string     `json:"output_format"`
	Scorer           string     `json:"scorer"`
	Status           Status     `json:"status"`
	ReferenceLines   int        `json:"reference_lines"`
	TranscriptBlocks int        `json:"transcript_blocks"`
	DirectMatches    int        `json:"direct_matches"`
	FallbackMatches  int        `json:"fallback_matches"`
	DroppedBlocks    int        `json:"dropped_blocks"`
	SkippedLeading   int        `json:"skipped_leading"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
}

// Entries returns the number of emitted caption lines.
func (r *Run) Entries() int {
	if r == nil {
		return 0
	}
	return r.DirectMatches + r.FallbackMatches
}

// Duration returns the wall-clock time of a finished run, zero otherwise.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
