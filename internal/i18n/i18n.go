// Package i18n holds the display language, the localized result caption, and
// the persisted language preference.
package i18n

import (
	"fmt"

	"github.com/ziadkadry99/layoutgen/internal/instructions"
)

// Language is a supported display language code.
type Language string

const (
	Chinese Language = "zh"
	English Language = "en"

	Default = Chinese
)

// Parse accepts "zh" or "en".
func Parse(s string) (Language, error) {
	switch Language(s) {
	case Chinese, English:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q: must be zh or en", s)
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Chinese
	}
	return English
}

type phrases struct {
	poster, card string
	yes, no      string
	caption      func(title, typeText, styleText string) string
}

var table = map[Language]phrases{
	Chinese: {
		poster: "海报",
		card:   "卡片",
		yes:    "是",
		no:     "否",
		caption: func(title, typeText, styleText string) string {
			return fmt.Sprintf("这是为您生成的关于“%s”的%s页面预览（图片上传模块：%s）。", title, typeText, styleText)
		},
	},
	English: {
		poster: "Poster",
		card:   "Card",
		yes:    "Yes",
		no:     "No",
		caption: func(title, typeText, styleText string) string {
			return fmt.Sprintf("Here is the preview for your %s about \"%s\" (Image Upload: %s).", typeText, title, styleText)
		},
	},
}

// Caption builds the preview header text for a completed job.
// Unknown languages use the default.
func Caption(lang Language, title string, ct instructions.ContentType, style instructions.Style) string {
	p, ok := table[lang]
	if !ok {
		p = table[Default]
	}

	typeText := p.card
	if ct == instructions.ContentPoster {
		typeText = p.poster
	}
	styleText := p.no
	if style == instructions.StyleWithImageUpload {
		styleText = p.yes
	}
	return p.caption(title, typeText, styleText)
}

// Labels are the preview toolbar strings.
type Labels struct {
	ZoomIn    string
	ZoomOut   string
	ResetZoom string
	ViewCode  string
	Download  string
	Completed string
	Failed    string
	Pending   string
}

var labels = map[Language]Labels{
	Chinese: {
		ZoomIn:    "放大",
		ZoomOut:   "缩小",
		ResetZoom: "重置缩放",
		ViewCode:  "查看/复制 HTML 代码",
		Download:  "下载",
		Completed: "已完成",
		Failed:    "生成失败",
		Pending:   "生成中...",
	},
	English: {
		ZoomIn:    "Zoom In",
		ZoomOut:   "Zoom Out",
		ResetZoom: "Reset Zoom",
		ViewCode:  "View/Copy HTML Code",
		Download:  "Download",
		Completed: "Completed",
		Failed:    "Failed to generate",
		Pending:   "Generating...",
	},
}

// LabelsFor returns the toolbar strings for lang, or the default language's.
func LabelsFor(lang Language) Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[Default]
}
