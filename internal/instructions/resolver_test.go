package instructions

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestTemplateName(t *testing.T) {
	tests := []struct {
		ct    ContentType
		style Style
		want  string
	}{
		{ContentPoster, StyleWithImageUpload, "posterwithimageupload.txt"},
		{ContentPoster, StyleWithoutImageUpload, "posterwithoutimageupload.txt"},
		{ContentCard, StyleWithImageUpload, "cardwithimageupload.txt"},
		{ContentCard, StyleWithoutImageUpload, "cardwithoutimageupload.txt"},
	}
	for _, tt := range tests {
		if got := TemplateName(tt.ct, tt.style); got != tt.want {
			t.Errorf("TemplateName(%q, %q) = %q, want %q", tt.ct, tt.style, got, tt.want)
		}
	}
}

func TestParseStyleAcceptsBothSpellings(t *testing.T) {
	tests := map[string]Style{
		"with-image-upload":    StyleWithImageUpload,
		"withimageupload":      StyleWithImageUpload,
		"without-image-upload": StyleWithoutImageUpload,
		"withoutimageupload":   StyleWithoutImageUpload,
	}
	for in, want := range tests {
		got, err := ParseStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseStyle(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStyle("photorealistic"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestParseContentType(t *testing.T) {
	if ct, err := ParseContentType("card"); err != nil || ct != ContentCard {
		t.Errorf("ParseContentType(card) = %q, %v", ct, err)
	}
	if _, err := ParseContentType("flyer"); err == nil {
		t.Error("expected error for unknown content type")
	}
}

func TestEmbeddedTemplatesCoverEverySelector(t *testing.T) {
	r := Default("")
	ctx := context.Background()
	for _, ct := range []ContentType{ContentPoster, ContentCard} {
		for _, style := range []Style{StyleWithImageUpload, StyleWithoutImageUpload} {
			text, err := r.Resolve(ctx, ct, style)
			if err != nil {
				t.Errorf("Resolve(%s, %s): %v", ct, style, err)
				continue
			}
			if !strings.Contains(text, "<title>") {
				t.Errorf("template %s should ask for a <title> tag", TemplateName(ct, style))
			}
		}
	}
}

func TestResolveMissingTemplate(t *testing.T) {
	r := NewResolver(fstest.MapFS{})

	_, err := r.Resolve(context.Background(), ContentPoster, StyleWithoutImageUpload)
	if err == nil {
		t.Fatal("expected error for missing template")
	}

	var tle *TemplateLoadError
	if !errors.As(err, &tle) {
		t.Fatalf("expected *TemplateLoadError, got %T", err)
	}
	if tle.Name != "posterwithoutimageupload.txt" {
		t.Errorf("Name = %q", tle.Name)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected error to wrap fs.ErrNotExist")
	}
	if !strings.Contains(err.Error(), "posterwithoutimageupload.txt") {
		t.Errorf("message should name the file: %q", err.Error())
	}
}

func TestResolveOverrideDirWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cardwithimageupload.txt"), []byte("custom card"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := Default(dir)
	ctx := context.Background()

	got, err := r.Resolve(ctx, ContentCard, StyleWithImageUpload)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "custom card" {
		t.Errorf("override not used: %q", got)
	}

	// Templates absent from the override fall through to the built-ins.
	got, err = r.Resolve(ctx, ContentPoster, StyleWithImageUpload)
	if err != nil {
		t.Fatalf("Resolve fallthrough: %v", err)
	}
	if got == "" {
		t.Error("expected built-in template text")
	}
}

func TestAvailableMergesLayers(t *testing.T) {
	r := NewResolver(
		fstest.MapFS{
			"postersparkle.txt":       {Data: []byte("x")},
			"notes.md":                {Data: []byte("ignored")},
			"cardwithimageupload.txt": {Data: []byte("dup")},
		},
		Embedded(),
	)

	names, err := r.Available()
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	want := []string{
		"cardwithimageupload.txt",
		"cardwithoutimageupload.txt",
		"postersparkle.txt",
		"posterwithimageupload.txt",
		"posterwithoutimageupload.txt",
	}
	if len(names) != len(want) {
		t.Fatalf("Available() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
