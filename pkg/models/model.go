package models

import "strings"

// ModelDefinition is a validated content fragment model ready for generation.
type ModelDefinition struct {
	Name        string
	ProjectName string
	FolderName  string
	Fields      []FieldDefinition
}

// Request is the structured input submitted by a form, flags or a request file.
// It is the only shape accepted at the input boundary.
type Request struct {
	Name        string      `yaml:"name" json:"name"`
	ProjectName string      `yaml:"projectName" json:"projectName"`
	FolderName  string      `yaml:"folderName" json:"folderName"`
	Fields      []FieldSpec `yaml:"fields" json:"fields"`
}

// FieldSpec is the flat, untyped field descriptor of a Request.
type FieldSpec struct {
	Name         string    `yaml:"name" json:"name"`
	Type         FieldType `yaml:"type" json:"type"`
	Label        string    `yaml:"label,omitempty" json:"label,omitempty"`
	Description  string    `yaml:"description,omitempty" json:"description,omitempty"`
	Required     bool      `yaml:"required,omitempty" json:"required,omitempty"`
	Validation   string    `yaml:"validation,omitempty" json:"validation,omitempty"` // "required" or "optional"
	Placeholder  string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	MaxLength    int       `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Value        string    `yaml:"value,omitempty" json:"value,omitempty"`
	DefaultValue string    `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Step         float64   `yaml:"step,omitempty" json:"step,omitempty"`
	NumberType   string    `yaml:"numberType,omitempty" json:"numberType,omitempty"`
	Checked      bool      `yaml:"checked,omitempty" json:"checked,omitempty"`
	Text         string    `yaml:"text,omitempty" json:"text,omitempty"`
	Options      []string  `yaml:"options,omitempty" json:"options,omitempty"`
}

// Validation tokens submitted by the form.
const (
	ValidationRequired = "required"
	ValidationOptional = "optional"
)

// IsRequired reports whether the field is mandatory, honoring both the
// boolean flag and the form's validation token.
func (s FieldSpec) IsRequired() bool {
	return s.Required || strings.EqualFold(s.Validation, ValidationRequired)
}

// initialValue returns the explicit value, falling back to the form default.
func (s FieldSpec) initialValue() string {
	if s.Value != "" {
		return s.Value
	}
	return s.DefaultValue
}

// Definition converts the flat descriptor into a typed FieldDefinition.
// Type-specific defaults are applied here so every consumer sees the same values.
func (s FieldSpec) Definition() FieldDefinition {
	def := FieldDefinition{
		Name:        strings.TrimSpace(s.Name),
		Type:        FieldType(strings.TrimSpace(string(s.Type))),
		Label:       s.Label,
		Description: s.Description,
		Required:    s.IsRequired(),
	}

	switch def.Type.Canonical() {
	case FieldTextSingle:
		maxLen := s.MaxLength
		if maxLen <= 0 {
			maxLen = DefaultMaxLength
		}
		def.Attrs = TextAttrs{Placeholder: s.Placeholder, MaxLength: maxLen, Value: s.initialValue()}
	case FieldTextMulti:
		def.Attrs = MultiTextAttrs{MimeType: DefaultMimeType}
	case FieldNumber:
		step := s.Step
		if step == 0 {
			step = DefaultStep
		}
		numberType := s.NumberType
		if numberType == "" {
			numberType = DefaultNumberType
		}
		value := s.initialValue()
		if value == "" {
			value = DefaultNumberValue
		}
		def.Attrs = NumberAttrs{Placeholder: s.Placeholder, Step: step, NumberType: numberType, Value: value}
	case FieldBoolean:
		text := s.Text
		if text == "" {
			text = def.DisplayLabel()
		}
		def.Attrs = BooleanAttrs{Checked: s.Checked, Text: text}
	case FieldDateTime:
		def.Attrs = DateTimeAttrs{Value: s.initialValue()}
	case FieldEnumeration:
		opts := cleanOptions(s.Options)
		if len(opts) == 0 {
			opts = append([]string(nil), DefaultEnumerationOptions...)
		}
		def.Attrs = EnumerationAttrs{Options: opts}
	default:
		def.Attrs = UnknownAttrs{}
	}

	return def
}

// Definition converts the request into a ModelDefinition.
// Names are trimmed; no rule is checked here.
func (r Request) Definition() ModelDefinition {
	fields := make([]FieldDefinition, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = f.Definition()
	}
	return ModelDefinition{
		Name:        strings.TrimSpace(r.Name),
		ProjectName: strings.TrimSpace(r.ProjectName),
		FolderName:  strings.TrimSpace(r.FolderName),
		Fields:      fields,
	}
}

// WithDefaults returns a copy of r with blank project and folder names
// replaced by the given defaults.
func (r Request) WithDefaults(project, folder string) Request {
	if strings.TrimSpace(r.ProjectName) == "" {
		r.ProjectName = project
	}
	if strings.TrimSpace(r.FolderName) == "" {
		r.FolderName = folder
	}
	return r
}

// SplitOptions parses a comma separated option list as typed into a form.
func SplitOptions(raw string) []string {
	return cleanOptions(strings.Split(raw, ","))
}

// cleanOptions trims each option and drops empty entries.
func cleanOptions(in []string) []string {
	var out []string
	for _, o := range in {
		if t := strings.TrimSpace(o); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Choice is a selectable option offered by the form.
type Choice struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}
