package templates

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed html/*.html
var files embed.FS

const layoutFile = "html/layout.html"

// ErrTemplateNotFound is returned by Render for an unknown page name.
var ErrTemplateNotFound = errors.New("template not found")

// StaticURLFunc resolves a static file name to its public URL.
type StaticURLFunc func(name string) (string, error)

// ErrorPage is the data of the 401, 404 and 500 pages.
type ErrorPage struct {
	Code int
}

// Renderer executes the embedded pages inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page together with the layout. staticURL backs
// the static_url_for template function.
func New(staticURL StaticURLFunc) (*Renderer, error) {
	funcs := template.FuncMap{
		"static_url_for": staticURL,
	}

	names, err := fs.Glob(files, "html/*.html")
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile {
			continue
		}

		tmpl, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(files, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		pages[strings.TrimPrefix(name, "html/")] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the page name (e.g. "home.html") to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error rendering %s: %w", name, err)
	}
	return nil
}

// Has reports whether a page called name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
