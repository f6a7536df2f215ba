package preview

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/layoutgen/internal/i18n"
)

// Page is everything the viewer shows for one completed job.
type Page struct {
	Title       string
	Caption     string
	Document    string
	Zoom        Zoom
	Language    i18n.Language
	DownloadURL string
}

type pageData struct {
	Page
	Labels      i18n.Labels
	Scale       float64
	FrameSize   float64
	Percent     int
	ZoomInHref  string
	ZoomOutHref string
	ResetHref   string
}

var pageTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: #f3f4f6; display: flex; flex-direction: column; height: 100vh; }
header { display: flex; align-items: center; justify-content: space-between; gap: 1rem; padding: .75rem 1rem; background: #fff; border-bottom: 1px solid #e5e7eb; }
header p { margin: 0; color: #374151; }
nav a { margin-left: .5rem; color: #2563eb; text-decoration: none; }
.stage { flex: 1; overflow: auto; background: #e5e7eb; }
.scaler { width: 100%; height: 100%; transform-origin: top left; }
iframe { border: 0; background: #fff; }
</style>
</head>
<body>
<header>
<p>{{.Caption}}</p>
<nav>
<a href="{{.ZoomOutHref}}" title="{{.Labels.ZoomOut}}">&minus;</a>
<a href="{{.ResetHref}}" title="{{.Labels.ResetZoom}}">{{.Percent}}%</a>
<a href="{{.ZoomInHref}}" title="{{.Labels.ZoomIn}}">+</a>
{{- if .DownloadURL}}
<a href="{{.DownloadURL}}" download>{{.Labels.Download}}</a>
{{- end}}
</nav>
</header>
<div class="stage">
<div class="scaler" style="transform: scale({{.Scale}})">
<iframe title="Generated Content Preview" sandbox="allow-scripts allow-downloads"
 style="width: {{.FrameSize}}%; height: {{.FrameSize}}%"
 srcdoc="{{.Document}}"></iframe>
</div>
</div>
</body>
</html>
`))

// Render writes the viewer page for p. The iframe is sized inversely to the
// scale so the scaled frame still fills the stage.
func Render(w io.Writer, p Page) error {
	z := p.Zoom
	if z == 0 {
		z = DefaultZoom
	}
	z = clamp(z)
	p.Zoom = z
	if p.Language == "" {
		p.Language = i18n.Default
	}

	data := pageData{
		Page:        p,
		Labels:      i18n.LabelsFor(p.Language),
		Scale:       z.Factor(),
		FrameSize:   100 / z.Factor(),
		Percent:     z.Percent(),
		ZoomInHref:  "?zoom=" + z.In().String(),
		ZoomOutHref: "?zoom=" + z.Out().String(),
		ResetHref:   "?zoom=" + z.Reset().String(),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	return nil
}
