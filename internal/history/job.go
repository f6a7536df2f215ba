// Package history keeps the ordered, persisted collection of generation jobs.
package history

import (
	"cmp"
	"encoding/json"
	"fmt"
)

// Status is the lifecycle stage of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Outcome is the terminal result of a job: Completed or Failed.
type Outcome interface {
	status() Status
}

// Completed carries the generated document. Title replaces the job's theme.
type Completed struct {
	HTML  string
	Text  string
	Title string
}

func (Completed) status() Status { return StatusCompleted }

// Failed carries the human-readable failure message.
type Failed struct {
	Message string
}

func (Failed) status() Status { return StatusFailed }

// Job is one generation request. A nil Outcome means the job is pending.
type Job struct {
	ID      int64
	Theme   string
	Outcome Outcome
}

// Status derives the job's status from its outcome.
func (j Job) Status() Status {
	if j.Outcome == nil {
		return StatusPending
	}
	return j.Outcome.status()
}

// Completed returns the completed outcome, if any.
func (j Job) Completed() (Completed, bool) {
	c, ok := j.Outcome.(Completed)
	return c, ok
}

// Failed returns the failed outcome, if any.
func (j Job) Failed() (Failed, bool) {
	f, ok := j.Outcome.(Failed)
	return f, ok
}

// Terminal reports whether the job has settled.
func (j Job) Terminal() bool { return j.Outcome != nil }

// record is the flat wire shape shared by persistence and the API.
type record struct {
	ID     int64  `json:"id"`
	Theme  string `json:"theme"`
	HTML   string `json:"html,omitempty"`
	Text   string `json:"text,omitempty"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// legacyIncompleteMessage marks old records saved without a status or a result.
const legacyIncompleteMessage = "no result was recorded for this job"

// MarshalJSON flattens the job to {id, theme, html?, text?, status, error?}.
func (j Job) MarshalJSON() ([]byte, error) {
	r := record{ID: j.ID, Theme: j.Theme, Status: j.Status()}
	switch o := j.Outcome.(type) {
	case Completed:
		r.HTML = o.HTML
		r.Text = o.Text
	case Failed:
		r.Error = o.Message
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes the flat shape and rejects records whose fields do
// not match their status. A record with no status is read as completed when
// it has html and text, and as failed otherwise.
func (j *Job) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.ID == 0 {
		return fmt.Errorf("job record missing id")
	}
	if r.Status == "" {
		if r.HTML != "" && r.Text != "" {
			r.Status = StatusCompleted
		} else {
			r = record{ID: r.ID, Theme: r.Theme, Status: StatusFailed, Error: cmp.Or(r.Error, legacyIncompleteMessage)}
		}
	}

	job := Job{ID: r.ID, Theme: r.Theme}
	switch r.Status {
	case StatusPending:
		if r.HTML != "" || r.Text != "" || r.Error != "" {
			return fmt.Errorf("job %d: pending record carries result fields", r.ID)
		}
	case StatusCompleted:
		if r.HTML == "" || r.Text == "" || r.Error != "" {
			return fmt.Errorf("job %d: completed record needs html and text and no error", r.ID)
		}
		job.Outcome = Completed{HTML: r.HTML, Text: r.Text, Title: r.Theme}
	case StatusFailed:
		if r.Error == "" || r.HTML != "" || r.Text != "" {
			return fmt.Errorf("job %d: failed record needs an error and no html or text", r.ID)
		}
		job.Outcome = Failed{Message: r.Error}
	default:
		return fmt.Errorf("job %d: unknown status %q", r.ID, r.Status)
	}

	*j = job
	return nil
}
