package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const (
	templatePage = "page"
	templateRoot = "root"
)

// Renderer turns a Model into HTML. Page renders the whole document with the mount
// container, Root only the tree mounted inside it.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: templates}, nil
}

// MustNewRenderer - panics if the embedded templates do not parse.
func MustNewRenderer() *Renderer {
	renderer, err := NewRenderer()
	if err != nil {
		panic(err)
	}

	return renderer
}

func (that *Renderer) Page(w io.Writer, model Model) error {
	if err := that.templates.ExecuteTemplate(w, templatePage, model); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

func (that *Renderer) Root(w io.Writer, model Model) error {
	if err := that.templates.ExecuteTemplate(w, templateRoot, model); err != nil {
		return fmt.Errorf("failed to render root: %w", err)
	}

	return nil
}

// RootString - renders the root tree into a string, for pushing over the live channel.
func (that *Renderer) RootString(model Model) (string, error) {
	var buf bytes.Buffer

	if err := that.Root(&buf, model); err != nil {
		return "", err
	}

	return buf.String(), nil
}
