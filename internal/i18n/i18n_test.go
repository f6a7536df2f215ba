package i18n

import (
	"context"
	"testing"

	"github.com/ziadkadry99/layoutgen/internal/instructions"
	"github.com/ziadkadry99/layoutgen/internal/kv"
	"github.com/ziadkadry99/layoutgen/internal/logging"
)

func TestCaption(t *testing.T) {
	tests := []struct {
		name  string
		lang  Language
		ct    instructions.ContentType
		style instructions.Style
		want  string
	}{
		{
			"english poster without upload",
			English, instructions.ContentPoster, instructions.StyleWithoutImageUpload,
			`Here is the preview for your Poster about "iPhone Launch" (Image Upload: No).`,
		},
		{
			"english card with upload",
			English, instructions.ContentCard, instructions.StyleWithImageUpload,
			`Here is the preview for your Card about "iPhone Launch" (Image Upload: Yes).`,
		},
		{
			"chinese poster with upload",
			Chinese, instructions.ContentPoster, instructions.StyleWithImageUpload,
			"这是为您生成的关于“iPhone Launch”的海报页面预览（图片上传模块：是）。",
		},
		{
			"unknown language uses default",
			Language("fr"), instructions.ContentCard, instructions.StyleWithoutImageUpload,
			"这是为您生成的关于“iPhone Launch”的卡片页面预览（图片上传模块：否）。",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Caption(tt.lang, "iPhone Launch", tt.ct, tt.style)
			if got != tt.want {
				t.Errorf("Caption() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAndToggle(t *testing.T) {
	if l, err := Parse("en"); err != nil || l != English {
		t.Errorf("Parse(en) = %q, %v", l, err)
	}
	if _, err := Parse("EN"); err == nil {
		t.Error("expected error for unsupported code")
	}
	if Chinese.Toggle() != English || English.Toggle() != Chinese {
		t.Error("Toggle should swap zh and en")
	}
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	prefs := NewPreferences(store, English, logging.Discard())

	lang, err := prefs.Language(ctx)
	if err != nil || lang != English {
		t.Fatalf("unset preference = %q, %v; want fallback en", lang, err)
	}

	if err := prefs.SetLanguage(ctx, Chinese); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, _ = prefs.Language(ctx)
	if lang != Chinese {
		t.Errorf("Language() = %q, want zh", lang)
	}

	if err := prefs.SetLanguage(ctx, Language("de")); err == nil {
		t.Error("expected error storing unsupported language")
	}
}

func TestPreferencesMalformedTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_ = store.Set(ctx, LanguageKey, []byte(`{"broken":`))

	prefs := NewPreferences(store, Chinese, logging.Discard())
	lang, err := prefs.Language(ctx)
	if err != nil {
		t.Fatalf("malformed value should not error: %v", err)
	}
	if lang != Chinese {
		t.Errorf("Language() = %q, want fallback zh", lang)
	}
}

func TestNewPreferencesInvalidFallback(t *testing.T) {
	prefs := NewPreferences(kv.NewMemoryStore(), Language("xx"), logging.Discard())
	lang, _ := prefs.Language(context.Background())
	if lang != Default {
		t.Errorf("Language() = %q, want %q", lang, Default)
	}
}

func TestLabelsFor(t *testing.T) {
	if got := LabelsFor(English).Download; got != "Download" {
		t.Errorf("English Download = %q", got)
	}
	if got := LabelsFor(Language("xx")).ZoomIn; got != "放大" {
		t.Errorf("fallback ZoomIn = %q, want the default language", got)
	}
}
