package template

import "path"

// ContentFile is the descriptor file name every repository node carries.
const ContentFile = ".content.xml"

// Document is one generated descriptor: a slash separated path relative to
// the destination root and its UTF-8 body.
type Document struct {
	Path string
	Body []byte
}

// DocumentSet is the ordered output of one generation.
type DocumentSet []Document

// Paths returns the relative paths in generation order.
func (s DocumentSet) Paths() []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = d.Path
	}
	return out
}

// Lookup returns the document at rel.
func (s DocumentSet) Lookup(rel string) (Document, bool) {
	for _, d := range s {
		if d.Path == rel {
			return d, true
		}
	}
	return Document{}, false
}

// documentLayout is the fixed node layout below the folder, in output order.
// The model entry lives in a directory named by the model slug.
var documentLayout = []struct {
	dir      string
	template string
	model    bool
}{
	{dir: "", template: "root.xml.tmpl"},
	{dir: "settings", template: "settings.xml.tmpl"},
	{dir: "settings/dam", template: "dam.xml.tmpl"},
	{dir: "settings/dam/cfm", template: "cfm.xml.tmpl"},
	{dir: "settings/dam/cfm/models", template: "models.xml.tmpl"},
	{dir: "settings/dam/cfm/models", template: "model.xml.tmpl", model: true},
}

// DocumentCount is the number of documents in every generated set.
func DocumentCount() int {
	return len(documentLayout)
}

// DocumentPath returns the path of a descriptor below folder.
func DocumentPath(folder string, segments ...string) string {
	parts := append([]string{folder}, segments...)
	parts = append(parts, ContentFile)
	return path.Join(parts...)
}
