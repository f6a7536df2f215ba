package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ziadkadry99/layoutgen/internal/kv"
)

// HistoryKey is the durable key holding the serialized job collection.
const HistoryKey = "generationHistory"

// ErrInvalidOutcome is returned by Resolve for outcomes that would break the
// rules for a job record (completed without html or text, or a nil outcome).
var ErrInvalidOutcome = errors.New("invalid job outcome")

// Store is the ordered, newest-first job collection. Every mutation persists
// the whole collection before it becomes visible in memory.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	jobs   []Job
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for discarded data warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the time source used for job ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store over the given key-value backend.
// Call Load to rehydrate persisted jobs.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. Corrupt
// data is deleted and replaced by an empty collection; only backend read
// failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	var jobs []Job
	if raw != nil {
		if err := decode(raw, &jobs); err != nil {
			s.logger.Warn("discarding malformed job history", "error", err)
			if err := s.kv.Delete(ctx, HistoryKey); err != nil {
				s.logger.Warn("could not delete malformed job history", "error", err)
			}
			jobs = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
	s.lastID = 0
	for _, j := range jobs {
		if j.ID > s.lastID {
			s.lastID = j.ID
		}
	}
	return nil
}

func decode(raw []byte, jobs *[]Job) error {
	if err := json.Unmarshal(raw, jobs); err != nil {
		return err
	}
	seen := make(map[int64]bool, len(*jobs))
	for _, j := range *jobs {
		if seen[j.ID] {
			return fmt.Errorf("duplicate job id %d", j.ID)
		}
		seen[j.ID] = true
	}
	return nil
}

// InsertPending creates a pending job for theme at the head of the
// collection and persists it.
func (s *Store) InsertPending(ctx context.Context, theme string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	job := Job{ID: id, Theme: theme}

	next := make([]Job, 0, len(s.jobs)+1)
	next = append(next, job)
	next = append(next, s.jobs...)

	if err := s.persist(ctx, next); err != nil {
		return Job{}, err
	}
	s.jobs = next
	s.lastID = id
	return job, nil
}

// Resolve applies outcome to the pending job with the given id and persists.
// It reports false without error when the id is unknown or the job has
// already settled.
func (s *Store) Resolve(ctx context.Context, id int64, outcome Outcome) (Job, bool, error) {
	switch o := outcome.(type) {
	case Completed:
		if o.HTML == "" || o.Text == "" {
			return Job{}, false, fmt.Errorf("%w: completed outcome needs html and text", ErrInvalidOutcome)
		}
	case Failed:
		if o.Message == "" {
			outcome = Failed{Message: "unknown error"}
		}
	default:
		return Job{}, false, fmt.Errorf("%w: %T", ErrInvalidOutcome, outcome)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Job{}, false, nil
	}
	current := s.jobs[idx]
	if current.Terminal() {
		return current, false, nil
	}

	updated := current
	if c, ok := outcome.(Completed); ok {
		if c.Title != "" {
			updated.Theme = c.Title
		}
		c.Title = updated.Theme
		outcome = c
	}
	updated.Outcome = outcome

	next := make([]Job, len(s.jobs))
	copy(next, s.jobs)
	next[idx] = updated

	if err := s.persist(ctx, next); err != nil {
		return Job{}, false, err
	}
	s.jobs = next
	return updated, true, nil
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Get returns the job with the given id.
func (s *Store) Get(id int64) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Job{}, false
	}
	return s.jobs[idx], true
}

func (s *Store) indexOf(id int64) int {
	for i, j := range s.jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context, jobs []Job) error {
	if jobs == nil {
		jobs = []Job{}
	}
	data, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.kv.Set(ctx, HistoryKey, data); err != nil {
		return fmt.Errorf("persisting history: %w", err)
	}
	return nil
}
