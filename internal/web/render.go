package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// renderer holds the parsed page templates. In reload mode the templates
// are read from disk and can be re-parsed while the server runs.
type renderer struct {
	fsys fs.FS

	mu   sync.RWMutex
	tmpl *template.Template
}

func newRenderer(fsys fs.FS) (*renderer, error) {
	r := &renderer{fsys: fsys}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func embeddedTemplates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func (r *renderer) reload() error {
	t, err := template.ParseFS(r.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.mu.Lock()
	r.tmpl = t
	r.mu.Unlock()
	return nil
}

func (r *renderer) render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	t := r.tmpl
	r.mu.RUnlock()
	return t.ExecuteTemplate(w, name, data)
}
