// Package web holds the embedded templates and static assets and renders
// pages for the HTTP handlers.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Categories offered by the post and filter forms.
var Categories = []string{"General", "Tech", "Travel", "Food", "Life"}

// Renderer executes named pages inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ together with layout.html.
func NewRenderer() (*Renderer, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	funcs := template.FuncMap{
		"markdown": func(input string) template.HTML {
			if strings.TrimSpace(input) == "" {
				return ""
			}
			var b bytes.Buffer
			if err := md.Convert([]byte(input), &b); err != nil {
				return template.HTML(template.HTMLEscapeString(input))
			}
			return template.HTML(b.String())
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, file := range files {
		base := path.Base(file)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Output is buffered so a failing template
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
