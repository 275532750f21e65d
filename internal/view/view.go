// Package view renders the HTML pages.
//
// Every page under templates/ is parsed together with layout.html and
// executed through the "layout" template. Pages define "title" and
// "content".
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// Page names.
const (
	ListPeople  = "list-people"
	NewPerson   = "new-person"
	ListZombies = "list-zombies"
	Error       = "error"
)

const layoutFile = "templates/layout.html"

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page. It fails on the first template error so a broken
// template stops startup instead of a request.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")

		tmpl, err := template.New(name).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parsing view %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Render writes page name with data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
