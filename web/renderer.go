package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"agentcrm_site/internal/config"
)

//go:embed templates static content
var files embed.FS

// Static returns the embedded static assets rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateRenderer is the echo renderer. Every page gets its own clone of the
// base layout and partials so pages can define their own blocks.
type TemplateRenderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

// NewTemplateRenderer parses the embedded templates with theme injected
func NewTemplateRenderer(theme config.Theme) (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"theme": func() config.Theme { return theme },
		"lower": strings.ToLower,
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(files, "templates/layouts/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	fragments, err := template.New("fragments").Funcs(funcs).ParseFS(files, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	pageFiles, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(files, page); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		pages[path.Base(page)] = clone
	}

	return &TemplateRenderer{pages: pages, fragments: fragments}, nil
}

// Render executes a page through the base layout. Names starting with
// "fragment:" execute a single partial, for HTMX swaps.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if partial, ok := strings.CutPrefix(name, "fragment:"); ok {
		if t.fragments.Lookup(partial) == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Fragment not found: "+partial)
		}
		return t.fragments.ExecuteTemplate(w, partial, data)
	}

	tmpl, ok := t.pages[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
