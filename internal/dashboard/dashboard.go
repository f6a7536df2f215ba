// Package dashboard serves the single-page generator UI, the job API and the
// live job stream.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/i18n"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
)

// Submitter starts generation jobs.
type Submitter interface {
	Submit(ctx context.Context, req orchestrator.Request) (history.Job, error)
}

// TemplateLister lists the instruction templates.
type TemplateLister interface {
	Available() ([]string, error)
}

// LanguageStore reads and writes the display language.
type LanguageStore interface {
	Language(ctx context.Context) (i18n.Language, error)
	SetLanguage(ctx context.Context, lang i18n.Language) error
}

// Dashboard provides the generator UI and its JSON/WebSocket API.
type Dashboard struct {
	store     *history.Store
	jobs      Submitter
	templates TemplateLister
	prefs     LanguageStore
	hub       *Hub
	logger    *slog.Logger
}

// New creates a new Dashboard. hub should be the notifier the orchestrator reports to.
func New(store *history.Store, jobs Submitter, templates TemplateLister, prefs LanguageStore, hub *Hub, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	if hub == nil {
		hub = NewHub(logger)
	}
	return &Dashboard{
		store:     store,
		jobs:      jobs,
		templates: templates,
		prefs:     prefs,
		hub:       hub,
		logger:    logger,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/jobs", d.handleListJobs)
		r.Post("/jobs", d.handleSubmitJob)
		r.Get("/jobs/{id}", d.handleGetJob)
		r.Get("/jobs/{id}/document", d.handleDocument)
		r.Get("/jobs/{id}/preview", d.handlePreview)

		r.Get("/settings/language", d.handleGetLanguage)
		r.Put("/settings/language", d.handleSetLanguage)

		r.Get("/templates", d.handleTemplates)
	})

	r.Get("/ws/jobs", d.handleJobStream)
}
