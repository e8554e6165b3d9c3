package models

// FieldType is the wire tag identifying a field's editor.
type FieldType string

const (
	// FieldTextSingle is a single line text field.
	FieldTextSingle FieldType = "text-single"

	// FieldTextMulti is a multi line rich text field.
	FieldTextMulti FieldType = "text-multi"

	// FieldNumber is a numeric field.
	FieldNumber FieldType = "number"

	// FieldBoolean is a checkbox field.
	FieldBoolean FieldType = "boolean"

	// FieldDateTime is a date and time picker.
	FieldDateTime FieldType = "datetime"

	// FieldEnumeration is a select with a fixed option list.
	FieldEnumeration FieldType = "enumeration"

	// fieldDateLegacy is the tag older forms emit for date pickers.
	fieldDateLegacy FieldType = "date"
)

// ValidFieldTypes returns the recognized field types in form order.
func ValidFieldTypes() []FieldType {
	return []FieldType{
		FieldTextSingle,
		FieldTextMulti,
		FieldNumber,
		FieldBoolean,
		FieldDateTime,
		FieldEnumeration,
	}
}

// Canonical maps legacy aliases to their current tag.
func (t FieldType) Canonical() FieldType {
	if t == fieldDateLegacy {
		return FieldDateTime
	}
	return t
}

// IsKnown reports whether t (or its alias) is a recognized field type.
func (t FieldType) IsKnown() bool {
	switch t.Canonical() {
	case FieldTextSingle, FieldTextMulti, FieldNumber, FieldBoolean, FieldDateTime, FieldEnumeration:
		return true
	}
	return false
}

// Default type-specific values applied when the form leaves them empty.
const (
	DefaultMaxLength   = 255
	DefaultStep        = 1.0
	DefaultNumberType  = "long"
	DefaultNumberValue = "0"
	DefaultMimeType    = "text/html"
)

// DefaultEnumerationOptions is used when an enumeration field has no options.
var DefaultEnumerationOptions = []string{"Option 1", "Option 2"}

// FieldDefinition is one typed, named attribute of a model.
type FieldDefinition struct {
	Name        string
	Type        FieldType // Wire tag as submitted; emitted verbatim as metaType.
	Label       string
	Description string
	Required    bool
	Attrs       Attrs // Type-specific attributes; never nil for converted fields.
}

// DisplayLabel returns the label, falling back to the field name.
func (f FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Attrs is the sealed set of type-specific field attributes.
// Exactly one implementation exists per FieldType plus UnknownAttrs.
type Attrs interface {
	fieldAttrs()
}

// TextAttrs holds single line text attributes.
type TextAttrs struct {
	Placeholder string
	MaxLength   int
	Value       string
}

// MultiTextAttrs holds multi line text attributes.
type MultiTextAttrs struct {
	MimeType string
}

// NumberAttrs holds numeric field attributes.
type NumberAttrs struct {
	Placeholder string
	Step        float64
	NumberType  string // Numeric subtype, e.g. "long" or "double".
	Value       string
}

// BooleanAttrs holds checkbox attributes.
type BooleanAttrs struct {
	Checked bool
	Text    string
}

// DateTimeAttrs holds date picker attributes.
type DateTimeAttrs struct {
	Value string // ISO-8601 date-time, empty when unset.
}

// EnumerationAttrs holds select attributes.
type EnumerationAttrs struct {
	Options []string
}

// UnknownAttrs is carried by fields whose type tag is not recognized.
type UnknownAttrs struct{}

func (TextAttrs) fieldAttrs()        {}
func (MultiTextAttrs) fieldAttrs()   {}
func (NumberAttrs) fieldAttrs()      {}
func (BooleanAttrs) fieldAttrs()     {}
func (DateTimeAttrs) fieldAttrs()    {}
func (EnumerationAttrs) fieldAttrs() {}
func (UnknownAttrs) fieldAttrs()     {}
