package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ziadkadry99/layoutgen/internal/audit"
	"github.com/ziadkadry99/layoutgen/internal/config"
	"github.com/ziadkadry99/layoutgen/internal/dashboard"
	"github.com/ziadkadry99/layoutgen/internal/generation"
	"github.com/ziadkadry99/layoutgen/internal/history"
	"github.com/ziadkadry99/layoutgen/internal/i18n"
	"github.com/ziadkadry99/layoutgen/internal/instructions"
	"github.com/ziadkadry99/layoutgen/internal/kv"
	"github.com/ziadkadry99/layoutgen/internal/llm"
	"github.com/ziadkadry99/layoutgen/internal/logging"
	"github.com/ziadkadry99/layoutgen/internal/notify"
	"github.com/ziadkadry99/layoutgen/internal/orchestrator"
)

// runtime is the set of components shared by the server, MCP and CLI commands.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	kv        kv.Store
	store     *history.Store
	prefs     *i18n.Preferences
	templates *instructions.Resolver
	hub       *dashboard.Hub
	audit     *audit.Store // nil unless the sqlite backend is in use
	orch      *orchestrator.Orchestrator
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `layoutgen init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{Level: level, Format: cfg.Log.Format})
}

// openStorage builds the pieces that only read and write the history and
// preferences. Commands that never generate use it directly.
func openStorage(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	store, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	jobs := history.NewStore(store, history.WithLogger(logger))
	if err := jobs.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:       cfg,
		logger:    logger,
		kv:        store,
		store:     jobs,
		prefs:     i18n.NewPreferences(store, i18n.Language(cfg.Language), logger),
		templates: instructions.Default(cfg.InstructionsDir),
	}
	if s, ok := store.(*kv.SQLiteStore); ok {
		rt.audit = audit.NewStore(s.DB())
	}
	return rt, nil
}

// openRuntime is openStorage plus the LLM provider and the orchestrator.
func openRuntime(ctx context.Context) (*runtime, error) {
	rt, err := openStorage(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(string(rt.cfg.Provider), rt.cfg.Model)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	client := generation.NewClient(provider, rt.cfg.Model, rt.cfg.MaxTokens, rt.logger)

	rt.hub = dashboard.NewHub(rt.logger)
	notifiers := notify.Multi{rt.hub}
	if rt.audit != nil {
		notifiers = append(notifiers, audit.NewRecorder(rt.audit, rt.logger))
	}
	if url := rt.cfg.Notify.WebhookURL; url != "" {
		timeout := time.Duration(rt.cfg.Notify.TimeoutSeconds) * time.Second
		notifiers = append(notifiers, notify.NewWebhook(url, timeout, rt.logger))
	}

	rt.orch = orchestrator.New(rt.store, rt.templates, client,
		orchestrator.WithNotifier(notifiers),
		orchestrator.WithLanguages(rt.prefs),
		orchestrator.WithLogger(rt.logger),
	)
	return rt, nil
}

// Close waits for in-flight jobs and releases the storage backend.
func (rt *runtime) Close() error {
	if rt.orch != nil {
		rt.orch.Wait()
	}
	return rt.kv.Close()
}
