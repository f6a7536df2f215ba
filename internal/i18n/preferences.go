package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ziadkadry99/layoutgen/internal/kv"
)

// LanguageKey is the durable key holding the selected language code.
const LanguageKey = "appLanguage"

// Preferences persists the display language.
type Preferences struct {
	kv       kv.Store
	fallback Language
	logger   *slog.Logger
}

// NewPreferences creates Preferences that report fallback when nothing valid is stored.
func NewPreferences(store kv.Store, fallback Language, logger *slog.Logger) *Preferences {
	if _, err := Parse(string(fallback)); err != nil {
		fallback = Default
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Preferences{kv: store, fallback: fallback, logger: logger}
}

// Language returns the stored language. A malformed value is treated as absent.
func (p *Preferences) Language(ctx context.Context) (Language, error) {
	raw, err := p.kv.Get(ctx, LanguageKey)
	if err != nil {
		return p.fallback, fmt.Errorf("reading language preference: %w", err)
	}
	if raw == nil {
		return p.fallback, nil
	}
	lang, err := Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		p.logger.Warn("ignoring malformed language preference", "value", string(raw))
		return p.fallback, nil
	}
	return lang, nil
}

// SetLanguage stores lang.
func (p *Preferences) SetLanguage(ctx context.Context, lang Language) error {
	if _, err := Parse(string(lang)); err != nil {
		return err
	}
	if err := p.kv.Set(ctx, LanguageKey, []byte(lang)); err != nil {
		return fmt.Errorf("saving language preference: %w", err)
	}
	return nil
}
