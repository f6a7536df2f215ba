// Package instructions maps a content type and style to the system
// instruction template sent with every generation request.
package instructions

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

//go:embed templates/*.txt
var embedded embed.FS

// ContentType selects what kind of layout is generated.
type ContentType string

const (
	ContentPoster ContentType = "poster"
	ContentCard   ContentType = "card"
)

// Style selects whether the layout includes an image upload module.
type Style string

const (
	StyleWithImageUpload    Style = "withimageupload"
	StyleWithoutImageUpload Style = "withoutimageupload"
)

// ParseContentType accepts "poster" or "card".
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentPoster, ContentCard:
		return ContentType(s), nil
	}
	return "", fmt.Errorf("unknown content type %q: must be poster or card", s)
}

// ParseStyle accepts both "withimageupload" and "with-image-upload" spellings.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "withimageupload", "with-image-upload":
		return StyleWithImageUpload, nil
	case "withoutimageupload", "without-image-upload":
		return StyleWithoutImageUpload, nil
	}
	return "", fmt.Errorf("unknown style %q: must be with-image-upload or without-image-upload", s)
}

// TemplateName returns the asset name for a content type and style,
// e.g. "posterwithoutimageupload.txt".
func TemplateName(ct ContentType, style Style) string {
	return string(ct) + string(style) + ".txt"
}

// TemplateLoadError reports an instruction template that is missing or unreadable.
type TemplateLoadError struct {
	Name string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("failed to load system prompt file: %s: %v", e.Name, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

// Resolver reads templates from a stack of file systems, first match wins.
type Resolver struct {
	layers []fs.FS
}

// NewResolver builds a Resolver over the given layers, searched in order.
func NewResolver(layers ...fs.FS) *Resolver {
	return &Resolver{layers: layers}
}

// Default returns a Resolver over overrideDir (if non-empty) followed by the
// built-in templates.
func Default(overrideDir string) *Resolver {
	var layers []fs.FS
	if overrideDir != "" {
		layers = append(layers, os.DirFS(overrideDir))
	}
	layers = append(layers, Embedded())
	return NewResolver(layers...)
}

// Embedded exposes the built-in templates as a flat file system.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Resolve returns the instruction text for ct and style.
func (r *Resolver) Resolve(ctx context.Context, ct ContentType, style Style) (string, error) {
	name := TemplateName(ct, style)
	if err := ctx.Err(); err != nil {
		return "", &TemplateLoadError{Name: name, Err: err}
	}

	for _, layer := range r.layers {
		data, err := fs.ReadFile(layer, name)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateLoadError{Name: name, Err: err}
		}
	}
	return "", &TemplateLoadError{Name: name, Err: fs.ErrNotExist}
}

// Available lists every template name visible through the layers, sorted.
func (r *Resolver) Available() ([]string, error) {
	seen := make(map[string]bool)
	for _, layer := range r.layers {
		matches, err := doublestar.Glob(layer, "*.txt")
		if err != nil {
			return nil, fmt.Errorf("listing templates: %w", err)
		}
		for _, m := range matches {
			seen[m] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
