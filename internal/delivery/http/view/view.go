// Package view renders the server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	User    string
	Role    string
	Flashes []Flash
	Errors  []string
	Data    any
}

type Renderer struct {
	log   *logrus.Logger
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"deref": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"lower": strings.ToLower,
}

// NewRenderer parses the layout together with every page template.
func NewRenderer(log *logrus.Logger) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{log: log, pages: pages}, nil
}

// Render writes page name with status. The page is rendered into a buffer
// first so that a template error still produces a clean 500.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := v.pages[name]
	if !ok {
		v.log.Errorf("Unknown template %q", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		v.log.Errorf("Failed to render template %s: %+v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Has reports whether a page template exists.
func (v *Renderer) Has(name string) bool {
	_, ok := v.pages[name]
	return ok
}
