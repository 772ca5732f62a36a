package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jhoicas/medisupply-api/internal/application/ports"
)

//go:embed templates/*.html
var templatesFS embed.FS

var _ ports.TemplateRenderer = (*Templates)(nil)

// Templates plantillas HTML embebidas, parseadas una sola vez.
type Templates struct {
	set *template.Template
}

// NewTemplates parsea templates/*.html.
func NewTemplates() (*Templates, error) {
	set, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render ejecuta la plantilla name (nombre de archivo, p.ej. "otp.html").
func (t *Templates) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
