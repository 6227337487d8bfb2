package harvest

import (
	"context"
	"time"
)

// Run is a recorded exploration.
type Run struct {
	ID           string     `json:"id"`
	StartURL     string     `json:"startUrl"`
	LinkSelector string     `json:"linkSelector"`
	Mode         Mode       `json:"mode"`
	Turns        int        `json:"turns"`
	LinkCount    int        `json:"linkCount"`
	StopReason   StopReason `json:"stopReason"`
	OutputPath   string     `json:"outputPath"`
	StartedAt    time.Time  `json:"startedAt"`
	FinishedAt   time.Time  `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	if r.Mode != ModePagination && r.Mode != ModeInteractive {
		return Errorf(EINVALID, "run mode %q unknown", r.Mode)
	}
	return nil
}

// RunService represents a service for managing exploration history.
type RunService interface {
	// CreateRun records a run together with its links.
	CreateRun(ctx context.Context, run *Run, links []string) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRunLinks retrieves the links recorded for a run.
	// Returns ENOTFOUND if run does not exist.
	FindRunLinks(ctx context.Context, id string) ([]string, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID       *string `json:"id"`
	StartURL *string `json:"startUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
