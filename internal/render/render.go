// Package render turns view models into HTML with the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/startuphub/startuphub/internal/view"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the template set. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

func New() (*Renderer, error) {
	r := &Renderer{md: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))}
	funcMap := template.FuncMap{
		"markdown": r.markdown,
		"t":        view.T,
		"css":      func(s string) template.CSS { return template.CSS(s) },
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
	}
	t, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = t
	return r, nil
}

// markdown renders without raw HTML passthrough; goldmark drops inline HTML
// unless the unsafe renderer option is set.
func (r *Renderer) markdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(content) + "</p>")
	}
	return template.HTML(buf.String())
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	// render into a buffer so a failing template never emits half a page
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// App renders the full application page.
func (r *Renderer) App(w io.Writer, a view.App) error {
	return r.execute(w, "app.html", a)
}

// GridData is a standalone startup grid.
type GridData struct {
	Cards []view.StartupCard
	Empty *view.EmptyState
}

func (r *Renderer) Grid(w io.Writer, g GridData) error {
	return r.execute(w, "grid", g)
}

func (r *Renderer) Detail(w io.Writer, d view.Detail) error {
	return r.execute(w, "detail", d)
}

func (r *Renderer) ConfirmDelete(w io.Writer, c view.Confirm) error {
	return r.execute(w, "confirm", c)
}
