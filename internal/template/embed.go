package template

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// EmbeddedTemplates returns the descriptor templates rooted at the templates directory.
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embeddedTemplates, "templates")
}
