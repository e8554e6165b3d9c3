package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// xml escapes free text for use in attribute values and character data.
	"xml": XMLEscape,
}

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the file system and executes
	// it with the given data. Returns ErrMissingTemplateKey if a key is
	// missing.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// NewEmbeddedRenderer creates a Renderer over the built-in descriptor templates.
func NewEmbeddedRenderer() (Renderer, error) {
	fsys, err := EmbeddedTemplates()
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return NewRenderer(fsys), nil
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	return buf.Bytes(), nil
}
