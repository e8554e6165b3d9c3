package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

var (
	modelNamePattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	fieldNamePattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	projectNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Failure reasons. They are user-facing and must stay stable.
const (
	MsgModelNameRequired   = "Model name is required"
	MsgModelNameFormat     = "Model name can only contain letters, numbers, hyphens and underscores"
	MsgFieldsRequired      = "At least one field is required"
	MsgFieldIncomplete     = "All fields must have a name and type"
	MsgFieldNameFormat     = "Field name '%s' must start with a letter and contain only letters, numbers, hyphens or underscores"
	MsgFieldNameDuplicate  = "Field name '%s' is used more than once"
	MsgProjectNameRequired = "Project name is required"
	MsgProjectNameFormat   = "Project name can only contain lowercase letters, numbers, and hyphens"
	MsgFolderNameRequired  = "Folder name cannot be empty"
	MsgFolderNameText      = "Folder name contains a character that is not allowed in XML"
	MsgFieldText           = "Field '%s' contains a character that is not allowed in XML"
)

// @MX:ANCHOR: [AUTO] Model is the single entry point for model rule checks
// @MX:REASON: [AUTO] called by the scaffolder, the validate command and the wizard
// Model validates a model definition. It is deterministic and has no side effects.
func Model(m models.ModelDefinition) Result {
	return Run(ModelRules(m)...)
}

// ModelRules returns the ordered rules applied to a model definition.
func ModelRules(m models.ModelDefinition) []Rule {
	return []Rule{
		modelNameRule(m.Name),
		NotEmpty("fields", m.Fields, MsgFieldsRequired),
		Each(m.Fields, func(_ int, f models.FieldDefinition) Rule {
			return fieldRule(f.Name, string(f.Type))
		}),
		uniqueFieldNames(m.Fields),
		Each(m.Fields, func(_ int, f models.FieldDefinition) Rule {
			return XMLText(f.Name, fmt.Sprintf(MsgFieldText, f.Name), fieldText(f)...)
		}),
	}
}

// Request validates a caller-facing request: the model rules first, then
// the project and folder rules. Names are checked as submitted; trimming
// only applies to the presence checks.
func Request(r models.Request) Result {
	def := r.Definition()
	def.Name = r.Name
	def.ProjectName = r.ProjectName
	def.FolderName = r.FolderName
	for i, f := range r.Fields {
		def.Fields[i].Name = f.Name
	}
	rules := ModelRules(def)
	rules = append(rules, RequestRules(def)...)
	return Run(rules...)
}

// RequestRules returns the rules applied to the request-only attributes.
func RequestRules(m models.ModelDefinition) []Rule {
	return []Rule{
		projectNameRule(m.ProjectName),
		Present("folderName", m.FolderName, MsgFolderNameRequired),
		XMLText("folderName", MsgFolderNameText, m.FolderName),
	}
}

// ModelName validates a model name on its own.
func ModelName(name string) Result {
	return Run(modelNameRule(name))
}

// FieldName validates a field name on its own.
func FieldName(name string) Result {
	return Run(fieldRule(name, "-"))
}

// ProjectName validates a project name on its own.
func ProjectName(name string) Result {
	return Run(projectNameRule(name))
}

// FolderName validates a folder name on its own.
func FolderName(name string) Result {
	return Run(Present("folderName", name, MsgFolderNameRequired))
}

func modelNameRule(name string) Rule {
	return Chain(
		Present("name", name, MsgModelNameRequired),
		Matches("name", name, modelNamePattern, MsgModelNameFormat),
	)
}

func projectNameRule(name string) Rule {
	return Chain(
		Present("projectName", name, MsgProjectNameRequired),
		Matches("projectName", name, projectNamePattern, MsgProjectNameFormat),
	)
}

func fieldRule(name, fieldType string) Rule {
	return Chain(
		func() *Failure {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(fieldType) == "" {
				return &Failure{Field: name, Reason: MsgFieldIncomplete}
			}
			return nil
		},
		Matches(name, name, fieldNamePattern, fmt.Sprintf(MsgFieldNameFormat, name)),
	)
}

// uniqueFieldNames fails on the first field name seen twice.
func uniqueFieldNames(fields []models.FieldDefinition) Rule {
	return func() *Failure {
		seen := make(map[string]bool, len(fields))
		for _, f := range fields {
			if seen[f.Name] {
				return &Failure{Field: f.Name, Reason: fmt.Sprintf(MsgFieldNameDuplicate, f.Name)}
			}
			seen[f.Name] = true
		}
		return nil
	}
}

// fieldText returns the free-text values of f that end up in a descriptor.
func fieldText(f models.FieldDefinition) []string {
	values := []string{string(f.Type), f.Label, f.Description}
	switch a := f.Attrs.(type) {
	case models.TextAttrs:
		values = append(values, a.Placeholder, a.Value)
	case models.MultiTextAttrs:
		values = append(values, a.MimeType)
	case models.NumberAttrs:
		values = append(values, a.Placeholder, a.NumberType, a.Value)
	case models.BooleanAttrs:
		values = append(values, a.Text)
	case models.DateTimeAttrs:
		values = append(values, a.Value)
	case models.EnumerationAttrs:
		values = append(values, a.Options...)
	}
	return values
}
