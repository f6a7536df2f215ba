// Package orchestrator runs the generation job lifecycle: validate, record a
// pending job, then resolve the instruction, call the model, extract the
// document and record the single terminal outcome in the background.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/layoutgen/internal/extract"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/i18n"
	"github.com/ziadkadry99/layoutgen/internal/instructions"
)

// emptyDocumentMessage is recorded when extraction leaves nothing to show.
const emptyDocumentMessage = "Failed to generate code. Please try again later."

const (
	defaultResolveAttempts = 3
	defaultResolveBackoff  = 100 * time.Millisecond
)

var (
	// ErrJobNotFound is returned by Await for an id the store does not know.
	ErrJobNotFound = errors.New("job not found")
	// ErrNotRunning is returned by Await for a pending job that no pipeline in
	// this process will settle, such as one left over from a previous run.
	ErrNotRunning = errors.New("job is pending but not running")
)

// InstructionSource resolves the system instruction for a content type and style.
type InstructionSource interface {
	Resolve(ctx context.Context, ct instructions.ContentType, style instructions.Style) (string, error)
}

// Generator produces the raw model response for a theme.
type Generator interface {
	Generate(ctx context.Context, instruction, theme string, webSearch bool) (string, error)
}

// Notifier is told about every job state change. Implementations must not block for long.
type Notifier interface {
	JobUpdated(ctx context.Context, job history.Job)
}

// LanguageSource supplies the display language when a request names none.
type LanguageSource interface {
	Language(ctx context.Context) (i18n.Language, error)
}

// Request is one submission. Style defaults to with-image-upload. An empty
// Language uses the LanguageSource.
type Request struct {
	Theme       string
	ContentType string
	Style       string
	WebSearch   bool
	Language    string
}

// ValidationError rejects a request before any job exists.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// plan is a validated request.
type plan struct {
	theme     string
	ct        instructions.ContentType
	style     instructions.Style
	lang      i18n.Language
	webSearch bool
}

// Orchestrator owns the background pipelines. It is safe for concurrent use.
type Orchestrator struct {
	store        *history.Store
	instructions InstructionSource
	generator    Generator
	notifier     Notifier
	languages    LanguageSource
	logger       *slog.Logger

	resolveAttempts int
	resolveBackoff  time.Duration

	wg   sync.WaitGroup
	mu   sync.Mutex
	done map[int64]chan struct{}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNotifier registers n for job updates.
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithLanguages sets where the default caption language comes from.
func WithLanguages(l LanguageSource) Option {
	return func(o *Orchestrator) { o.languages = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an Orchestrator.
func New(store *history.Store, src InstructionSource, gen Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:        store,
		instructions: src,
		generator:    gen,
		logger:       slog.Default(),
		done:         make(map[int64]chan struct{}),

		resolveAttempts: defaultResolveAttempts,
		resolveBackoff:  defaultResolveBackoff,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates req, records a pending job and starts its pipeline. The
// returned job is already persisted. The pipeline outlives ctx.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (history.Job, error) {
	p, err := o.validate(ctx, req)
	if err != nil {
		return history.Job{}, err
	}

	// Await must never see the pending job without its done channel.
	o.mu.Lock()
	job, err := o.store.InsertPending(ctx, p.theme)
	if err != nil {
		o.mu.Unlock()
		return history.Job{}, fmt.Errorf("recording job: %w", err)
	}
	o.done[job.ID] = make(chan struct{})
	o.mu.Unlock()

	o.logger.Info("job submitted",
		"job_id", job.ID,
		"template", instructions.TemplateName(p.ct, p.style),
		"web_search", p.webSearch,
		"language", p.lang,
	)
	o.notify(ctx, job)

	o.wg.Add(1)
	go o.run(context.WithoutCancel(ctx), job, p)

	return job, nil
}

func (o *Orchestrator) validate(ctx context.Context, req Request) (plan, error) {
	p := plan{theme: req.Theme, webSearch: req.WebSearch}
	if strings.TrimSpace(p.theme) == "" {
		return plan{}, &ValidationError{Field: "theme", Message: "must not be blank"}
	}

	ct, err := instructions.ParseContentType(req.ContentType)
	if err != nil {
		return plan{}, &ValidationError{Field: "content_type", Message: err.Error()}
	}
	p.ct = ct

	p.style = instructions.StyleWithImageUpload
	if req.Style != "" {
		style, err := instructions.ParseStyle(req.Style)
		if err != nil {
			return plan{}, &ValidationError{Field: "style", Message: err.Error()}
		}
		p.style = style
	}

	if req.Language != "" {
		lang, err := i18n.Parse(req.Language)
		if err != nil {
			return plan{}, &ValidationError{Field: "language", Message: err.Error()}
		}
		p.lang = lang
	} else {
		p.lang = o.defaultLanguage(ctx)
	}
	return p, nil
}

func (o *Orchestrator) defaultLanguage(ctx context.Context) i18n.Language {
	if o.languages == nil {
		return i18n.Default
	}
	lang, err := o.languages.Language(ctx)
	if err != nil {
		o.logger.Warn("reading language preference", "error", err)
	}
	if _, perr := i18n.Parse(string(lang)); perr != nil {
		return i18n.Default
	}
	return lang
}

func (o *Orchestrator) run(ctx context.Context, job history.Job, p plan) {
	defer o.wg.Done()

	outcome := o.execute(ctx, p)

	settled, ok, err := o.settle(ctx, job.ID, outcome)
	o.release(job.ID)
	switch {
	case err != nil:
		o.logger.Error("could not record job outcome", "job_id", job.ID, "error", err)
		return
	case !ok:
		o.logger.Warn("job already settled", "job_id", job.ID)
		return
	}

	attrs := []any{"job_id", settled.ID, "status", settled.Status()}
	if f, isFailed := settled.Failed(); isFailed {
		o.logger.Warn("job failed", append(attrs, "error", f.Message)...)
	} else {
		o.logger.Info("job completed", append(attrs, "title", settled.Theme)...)
	}
	o.notify(ctx, settled)
}

// settle records outcome for id. When the store keeps refusing it, settle
// records a failure naming the storage error so the job does not stay pending.
func (o *Orchestrator) settle(ctx context.Context, id int64, outcome history.Outcome) (history.Job, bool, error) {
	job, ok, err := o.resolve(ctx, id, outcome)
	if err == nil {
		return job, ok, nil
	}
	o.logger.Warn("recording job outcome, falling back to failure", "job_id", id, "error", err)
	return o.resolve(ctx, id, history.Failed{Message: "recording outcome: " + err.Error()})
}

func (o *Orchestrator) resolve(ctx context.Context, id int64, outcome history.Outcome) (history.Job, bool, error) {
	backoff := o.resolveBackoff
	for attempt := 1; ; attempt++ {
		job, ok, err := o.store.Resolve(ctx, id, outcome)
		if err == nil || errors.Is(err, history.ErrInvalidOutcome) || attempt >= o.resolveAttempts {
			return job, ok, err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
}

// execute runs the pipeline and never panics.
func (o *Orchestrator) execute(ctx context.Context, p plan) (outcome history.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = history.Failed{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	instruction, err := o.instructions.Resolve(ctx, p.ct, p.style)
	if err != nil {
		return history.Failed{Message: err.Error()}
	}

	raw, err := o.generator.Generate(ctx, instruction, p.theme, p.webSearch)
	if err != nil {
		return history.Failed{Message: err.Error()}
	}

	res := extract.Extract(raw, p.theme)
	if res.Document == "" {
		return history.Failed{Message: emptyDocumentMessage}
	}

	return history.Completed{
		HTML:  res.Document,
		Text:  i18n.Caption(p.lang, res.Title, p.ct, p.style),
		Title: res.Title,
	}
}

func (o *Orchestrator) notify(ctx context.Context, job history.Job) {
	if o.notifier != nil {
		o.notifier.JobUpdated(ctx, job)
	}
}

func (o *Orchestrator) release(id int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ch, ok := o.done[id]; ok {
		close(ch)
		delete(o.done, id)
	}
}

// Await blocks until the job with id is terminal or ctx ends.
func (o *Orchestrator) Await(ctx context.Context, id int64) (history.Job, error) {
	o.mu.Lock()
	job, ok := o.store.Get(id)
	ch := o.done[id]
	o.mu.Unlock()

	if !ok {
		return history.Job{}, ErrJobNotFound
	}
	if job.Terminal() {
		return job, nil
	}
	if ch == nil {
		return job, ErrNotRunning
	}

	select {
	case <-ch:
	case <-ctx.Done():
		return job, ctx.Err()
	}

	job, _ = o.store.Get(id)
	if !job.Terminal() {
		return job, ErrNotRunning
	}
	return job, nil
}

// Wait blocks until every started pipeline has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
