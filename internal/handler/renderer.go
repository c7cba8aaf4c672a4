package handler

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const layoutTemplate = "layout.html"

// Renderer renders a page template inside the shared layout.
// Each page is parsed together with the layout so every page can define
// its own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

// TemplateFuncs are available to every template
var TemplateFuncs = template.FuncMap{
	"amount": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

// NewRenderer parses templates/*.html from fsys
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	layout, err := template.New(layoutTemplate).Funcs(TemplateFuncs).ParseFS(fsys, "templates/"+layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		name := path.Base(file)
		if name == layoutTemplate {
			continue
		}
		page, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = page
	}
	return r, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}
