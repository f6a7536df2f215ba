package extract

import (
	"strings"
	"testing"
)

func TestExtractFencedHTML(t *testing.T) {
	raw := "Here you go:\n```html\n<html><head><title>Foo</title></head><body>hi</body></html>\n```\nEnjoy!"

	got := Extract(raw, "original theme")

	if got.Title != "Foo" {
		t.Errorf("Title = %q, want Foo", got.Title)
	}
	want := "<html><head><title>Foo</title></head><body>hi</body></html>"
	if got.Document != want {
		t.Errorf("Document = %q, want %q", got.Document, want)
	}
	if strings.Contains(got.Document, "```") {
		t.Error("document still contains fence markers")
	}
}

func TestExtractUntaggedFence(t *testing.T) {
	raw := "```\n<div>plain</div>\n```"
	got := Extract(raw, "theme")
	if got.Document != "<div>plain</div>" {
		t.Errorf("Document = %q", got.Document)
	}
	if got.Title != "theme" {
		t.Errorf("Title = %q, want theme fallback", got.Title)
	}
}

func TestExtractFallback(t *testing.T) {
	raw := "<p>no fence and no title</p>"
	got := Extract(raw, "My theme")
	if got.Document != raw {
		t.Errorf("Document = %q, want raw text", got.Document)
	}
	if got.Title != "My theme" {
		t.Errorf("Title = %q, want theme", got.Title)
	}
}

func TestExtractUsesFirstFence(t *testing.T) {
	raw := "```html\n<title>One</title>\n```\n```html\n<title>Two</title>\n```"
	got := Extract(raw, "t")
	if got.Title != "One" {
		t.Errorf("Title = %q, want One", got.Title)
	}
}

func TestExtractTitleCaseInsensitiveAndTrimmed(t *testing.T) {
	got := Extract("<HTML><TITLE>  iPhone Launch  </TITLE></HTML>", "fallback")
	if got.Title != "iPhone Launch" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestExtractBlankTitleFallsBack(t *testing.T) {
	got := Extract("<title>   </title><body/>", "fallback")
	if got.Title != "fallback" {
		t.Errorf("Title = %q, want fallback", got.Title)
	}
}

func TestExtractTrimsDocument(t *testing.T) {
	got := Extract("\n\n  <p>x</p>  \n", "t")
	if got.Document != "<p>x</p>" {
		t.Errorf("Document = %q", got.Document)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"<title>Spring Sale</title>", "Spring Sale.html"},
		{"<title>a/b\\c</title>", "a-b-c.html"},
		{"<title>  </title>", DefaultFileName},
		{"<p>no title</p>", DefaultFileName},
		{"<title>..</title>", DefaultFileName},
		{"<title>新品发布</title>", "新品发布.html"},
	}
	for _, tt := range tests {
		if got := FileName(tt.doc); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}
