// Package extract recovers the HTML document and its display title from raw
// model output.
package extract

import (
	"regexp"
	"strings"
)

// DefaultFileName is used for downloads when the document has no title.
const DefaultFileName = "generated-page.html"

var (
	fencePattern = regexp.MustCompile("```(?:html)?\\s*([\\s\\S]+?)\\s*```")
	titlePattern = regexp.MustCompile(`(?i)<title>(.*?)</title>`)
)

// Result is the recovered document and the title to display for it.
type Result struct {
	Document string
	Title    string
}

// Extract pulls the first fenced code block out of raw, falling back to raw
// itself, and reads the title from the document's <title> tag, falling back
// to theme. It never fails.
func Extract(raw, theme string) Result {
	doc := raw
	if m := fencePattern.FindStringSubmatch(raw); m != nil && m[1] != "" {
		doc = m[1]
	}

	title, ok := Title(doc)
	if !ok {
		title = theme
	}

	return Result{
		Document: strings.TrimSpace(doc),
		Title:    title,
	}
}

// Title returns the trimmed contents of the first <title> tag, if non-empty.
func Title(doc string) (string, bool) {
	m := titlePattern.FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	t := strings.TrimSpace(m[1])
	return t, t != ""
}

// FileName derives a download name from the document title.
func FileName(doc string) string {
	title, ok := Title(doc)
	if !ok {
		return DefaultFileName
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"':
			return '-'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, title)
	clean = strings.Trim(clean, ". ")
	if clean == "" {
		return DefaultFileName
	}
	return clean + ".html"
}
