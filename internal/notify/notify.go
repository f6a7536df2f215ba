// Package notify delivers job state changes to outside listeners.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ziadkadry99/layoutgen/internal/history"
)

// Notifier receives job updates.
type Notifier interface {
	JobUpdated(ctx context.Context, job history.Job)
}

// Event is the webhook payload.
type Event struct {
	Type   string      `json:"type"`
	Job    history.Job `json:"job"`
	SentAt time.Time   `json:"sent_at"`
}

// Webhook POSTs terminal job updates to a URL. Delivery failures are logged
// and never reach the job.
type Webhook struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewWebhook creates a Webhook. A zero timeout means 10 seconds.
func NewWebhook(url string, timeout time.Duration, logger *slog.Logger) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// JobUpdated sends completed and failed jobs. Pending updates are skipped.
func (w *Webhook) JobUpdated(ctx context.Context, job history.Job) {
	if !job.Terminal() {
		return
	}
	payload, err := json.Marshal(Event{
		Type:   "job." + string(job.Status()),
		Job:    job,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		w.logger.Error("encoding webhook payload", "job_id", job.ID, "error", err)
		return
	}
	if err := w.send(ctx, payload); err != nil {
		w.logger.Warn("webhook delivery failed", "job_id", job.ID, "url", w.url, "error", err)
	}
}

func (w *Webhook) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Multi fans an update out to every notifier in order.
type Multi []Notifier

func (m Multi) JobUpdated(ctx context.Context, job history.Job) {
	for _, n := range m {
		if n != nil {
			n.JobUpdated(ctx, job)
		}
	}
}
