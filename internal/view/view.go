// Package view is the template-rendering collaborator the handlers depend
// on. It stays deliberately thin: a template name plus a data mapping in,
// HTML out.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// TemplateRenderer renders the embedded page templates.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*TemplateRenderer, error) {
	entries, err := fs.Glob(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".gohtml")
		tmpl, err := template.ParseFS(templatesFS, entry)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry, err)
		}
		templates[name] = tmpl
	}
	return &TemplateRenderer{templates: templates}, nil
}

// Render executes the named template with the given data.
func (r *TemplateRenderer) Render(w io.Writer, name string, data map[string]any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.Execute(w, data)
}
