package template

import (
	"fmt"
	"time"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

// lastModifiedLayout is the ISO-8601 form stamped into cq:lastModified.
const lastModifiedLayout = "2006-01-02T15:04:05.000Z"

// DefaultModifiedBy is the user recorded as the last modifier of a model.
const DefaultModifiedBy = "admin"

// DocumentContext provides data for descriptor template rendering.
// All fields are exported for use with Go's text/template package.
// Text fields hold raw values; templates escape them with the xml function.
type DocumentContext struct {
	Title           string // Model display name.
	ProjectName     string
	ModelSlug       string // Path segment of the model directory.
	ModelNode       string // ModelSlug encoded as an XML element name.
	ScaffoldingPath string
	LastModified    string // UTC, millisecond precision.
	ModifiedBy      string

	// Fields is the pre-rendered, already escaped field block markup.
	Fields string
}

// NewDocumentContext builds the context shared by all documents of a model.
func NewDocumentContext(m models.ModelDefinition, stamp time.Time, modifiedBy string) *DocumentContext {
	slug := Slug(m.Name)
	return &DocumentContext{
		Title:           m.Name,
		ProjectName:     m.ProjectName,
		ModelSlug:       slug,
		ModelNode:       NodeName(slug),
		ScaffoldingPath: ScaffoldingPath(m.ProjectName, slug),
		LastModified:    stamp.UTC().Format(lastModifiedLayout),
		ModifiedBy:      modifiedBy,
	}
}

// ScaffoldingPath returns the repository path of a model's scaffolding node.
func ScaffoldingPath(project, slug string) string {
	return fmt.Sprintf("/conf/%s/settings/dam/cfm/models/%s/jcr:content/model", project, slug)
}
