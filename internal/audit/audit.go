// Package audit keeps an append-only trail of job state transitions in the
// sqlite database.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/ziadkadry99/layoutgen/internal/history"
)

// Action describes what happened to a job.
type Action string

const (
	ActionSubmitted Action = "submitted"
	ActionCompleted Action = "completed"
	ActionFailed    Action = "failed"
)

// ActionFor maps a job status to the transition that produced it.
func ActionFor(s history.Status) Action {
	switch s {
	case history.StatusCompleted:
		return ActionCompleted
	case history.StatusFailed:
		return ActionFailed
	default:
		return ActionSubmitted
	}
}

// Entry is a single audit trail record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	JobID     int64     `json:"job_id"`
	Action    Action    `json:"action"`
	Theme     string    `json:"theme"`
	Detail    string    `json:"detail,omitempty"`
}

// Recorder logs every job update it receives. Write failures are logged and
// dropped so the job pipeline never sees them.
type Recorder struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

func (r *Recorder) JobUpdated(ctx context.Context, job history.Job) {
	entry := Entry{
		Timestamp: r.now().UTC(),
		JobID:     job.ID,
		Action:    ActionFor(job.Status()),
		Theme:     job.Theme,
	}
	switch o := job.Outcome.(type) {
	case history.Completed:
		entry.Detail = o.Text
	case history.Failed:
		entry.Detail = o.Message
	}
	if err := r.store.Log(ctx, entry); err != nil {
		r.logger.Warn("recording audit entry", "job_id", job.ID, "action", entry.Action, "error", err)
	}
}
