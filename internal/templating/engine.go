package templating

import (
	"bytes"
	"fmt"
	"html/template"

	"go-reusable-content/internal/model"
)

const pageTemplates = `
{{ define "ribbon" -}}
<ul class="reusable-content-ribbon">
{{- range . }}
  <li data-title="{{ .Info.Title }}" data-category="{{ .Info.Category }}">{{ .Info.Title }}</li>
{{- else }}
  <li class="empty">No reusable content available</li>
{{- end }}
</ul>
{{- end }}

{{ define "preview" -}}
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{ .Record.Info.Title }}</title>
</head>
<body>
  <header class="preview-header">
    <h1>{{ .Record.Info.Title }}</h1>
    {{- with .Record.Info.Category }}<span class="category">{{ . }}</span>{{ end }}
    <span class="mode">{{ if .Record.Info.IsAutomaticUpdate }}automatic update{{ else }}copy{{ end }}</span>
  </header>
  <main class="reusable-content">{{ .Content }}</main>
</body>
</html>
{{- end }}
`

// previewData is what the "preview" template gets.
type previewData struct {
	Record  *model.ContentRecord
	Content template.HTML // Stored HTML, emitted as is
}

// Source supplies the entries the engine renders. *contentmanager.Manager
// implements it.
type Source interface {
	RibbonEntries() ([]*model.ContentRecord, error)
	Get(title string) (*model.ContentRecord, error)
}

// Engine renders reusable content for the ribbon and for previews.
type Engine struct {
	source Source
	tmpl   *template.Template
}

// NewEngine creates a new template engine.
func NewEngine(source Source) *Engine {
	return &Engine{
		source: source,
		tmpl:   template.Must(template.New("pages").Parse(pageTemplates)),
	}
}

// RenderRibbon renders the ribbon dropdown from the source's ribbon entries.
func (e *Engine) RenderRibbon() (string, error) {
	visible, err := e.source.RibbonEntries()
	if err != nil {
		return "", fmt.Errorf("failed to read reusable content: %w", err)
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "ribbon", visible); err != nil {
		return "", fmt.Errorf("failed to execute template 'ribbon': %w", err)
	}
	return buf.String(), nil
}

// Preview renders one stored entry's content inside a standalone page.
// The content is stored HTML and is not escaped; the manager sanitizes it on
// the way in when sanitize_html is set.
func (e *Engine) Preview(title string) (string, error) {
	record, err := e.source.Get(title)
	if err != nil {
		return "", fmt.Errorf("failed to load reusable content %q: %w", title, err)
	}

	var buf bytes.Buffer
	data := previewData{Record: record, Content: template.HTML(record.Info.Content)}
	if err := e.tmpl.ExecuteTemplate(&buf, "preview", data); err != nil {
		return "", fmt.Errorf("failed to execute template 'preview' for %q: %w", title, err)
	}
	return buf.String(), nil
}
