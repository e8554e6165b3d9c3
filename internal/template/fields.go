package template

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Granite resource types used by the field dispatch.
const (
	resourceTextField   = "granite/ui/components/coral/foundation/form/textfield"
	resourceMultiEditor = "dam/cfm/admin/components/authoring/contenteditor/multieditor"
	resourceNumberField = "granite/ui/components/coral/foundation/form/numberfield"
	resourceCheckbox    = "granite/ui/components/coral/foundation/form/checkbox"
	resourceDatePicker  = "granite/ui/components/coral/foundation/form/datepicker"
	resourceSelect      = "granite/ui/components/coral/foundation/form/select"
	resourceOptions     = "dam/cfm/admin/components/datasources/optionrenderer"

	dateDisplayFormat = "YYYY-MM-DD HH:mm"
	dateValueFormat   = "YYYY-MM-DD[T]HH:mm:ss.000Z"
)

// fieldIndent is the indentation of a field block inside the dialog items node.
const fieldIndent = 24

// attr is one attribute of a rendered element. Values are raw; the writer escapes them.
type attr struct {
	name  string
	value string
}

// element is a rendered node with attributes on separate lines.
type element struct {
	name     string
	attrs    []attr
	children []element
}

// write appends e to b at the given indentation.
func (e element) write(b *strings.Builder, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(pad)
	b.WriteString("<")
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString("    ")
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(XMLEscape(a.value))
		b.WriteString(`"`)
	}
	if len(e.children) == 0 {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">\n")
	for _, c := range e.children {
		c.write(b, indent+4)
	}
	b.WriteString(pad)
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteString(">\n")
}

// elementID returns the synthetic node name of the field at index.
// The index keeps it unique within a document and seq keeps it unique
// across generations stamped in the same millisecond.
func elementID(index int, stamp time.Time, seq uint64) string {
	return fmt.Sprintf("_x003%d_%d_%d", index, stamp.UnixMilli(), seq)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// commonAttrs returns the attributes every field block carries.
func commonAttrs(f models.FieldDefinition, index int) []attr {
	return []attr{
		{"jcr:primaryType", "nt:unstructured"},
		{"fieldLabel", f.DisplayLabel()},
		{"fieldDescription", f.Description},
		{"name", f.Name},
		{"listOrder", strconv.Itoa(index + 1)},
		{"metaType", string(f.Type)},
		{"renderReadOnly", "false"},
		{"showEmptyInReadOnly", "true"},
		{"required", onOff(f.Required)},
	}
}

// fieldElement builds the block for the field at index. It fails when the
// field is in a state validation forbids or its attributes do not match its type.
func fieldElement(f models.FieldDefinition, index int, stamp time.Time, seq uint64) (element, error) {
	if strings.TrimSpace(f.Name) == "" {
		return element{}, fmt.Errorf("%w: field %d has no name", ErrMalformedField, index)
	}
	if strings.TrimSpace(string(f.Type)) == "" {
		return element{}, fmt.Errorf("%w: field %q has no type", ErrMalformedField, f.Name)
	}
	if f.Attrs == nil {
		return element{}, fmt.Errorf("%w: field %q has no attributes", ErrMalformedField, f.Name)
	}
	if err := checkVariant(f); err != nil {
		return element{}, err
	}

	el := element{name: elementID(index, stamp, seq), attrs: commonAttrs(f, index)}

	switch a := f.Attrs.(type) {
	case models.TextAttrs:
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceTextField},
			attr{"emptyText", a.Placeholder},
			attr{"maxlength", strconv.Itoa(a.MaxLength)},
			attr{"valueType", "string"},
			attr{"value", a.Value},
		)
	case models.MultiTextAttrs:
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceMultiEditor},
			attr{"default-mime-type", a.MimeType},
			attr{"valueType", "string"},
		)
	case models.NumberAttrs:
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceNumberField},
			attr{"emptyText", a.Placeholder},
			attr{"step", strconv.FormatFloat(a.Step, 'f', -1, 64)},
			attr{"typeHint", a.NumberType},
			attr{"valueType", a.NumberType},
			attr{"value", a.Value},
		)
	case models.BooleanAttrs:
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceCheckbox},
			attr{"checked", "{Boolean}" + strconv.FormatBool(a.Checked)},
			attr{"text", a.Text},
			attr{"valueType", "boolean"},
		)
	case models.DateTimeAttrs:
		value := ""
		if a.Value != "" {
			value = "{Date}" + a.Value
		}
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceDatePicker},
			attr{"displayedFormat", dateDisplayFormat},
			attr{"emptyText", dateDisplayFormat},
			attr{"type", "datetime"},
			attr{"valueFormat", dateValueFormat},
			attr{"valueType", "calendar"},
			attr{"value", value},
		)
		el.children = []element{{
			name: "granite:data",
			attrs: []attr{
				{"jcr:primaryType", "nt:unstructured"},
				{"typeHint", "Date"},
			},
		}}
	case models.EnumerationAttrs:
		if len(a.Options) == 0 {
			return element{}, fmt.Errorf("%w: enumeration %q has no options", ErrMalformedField, f.Name)
		}
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceSelect},
			attr{"emptyOption", "{Boolean}true"},
			attr{"options", strings.Join(a.Options, ",")},
			attr{"valueType", "string"},
		)
		el.children = []element{{
			name: "datasource",
			attrs: []attr{
				{"jcr:primaryType", "nt:unstructured"},
				{"sling:resourceType", resourceOptions},
				{"variant", "default"},
			},
		}}
	default:
		el.attrs = append(el.attrs,
			attr{"sling:resourceType", resourceTextField},
			attr{"valueType", "string"},
		)
	}

	return el, nil
}

// checkVariant reports a field whose attribute variant disagrees with its type tag.
func checkVariant(f models.FieldDefinition) error {
	var ok bool
	switch f.Type.Canonical() {
	case models.FieldTextSingle:
		_, ok = f.Attrs.(models.TextAttrs)
	case models.FieldTextMulti:
		_, ok = f.Attrs.(models.MultiTextAttrs)
	case models.FieldNumber:
		_, ok = f.Attrs.(models.NumberAttrs)
	case models.FieldBoolean:
		_, ok = f.Attrs.(models.BooleanAttrs)
	case models.FieldDateTime:
		_, ok = f.Attrs.(models.DateTimeAttrs)
	case models.FieldEnumeration:
		_, ok = f.Attrs.(models.EnumerationAttrs)
	default:
		_, ok = f.Attrs.(models.UnknownAttrs)
	}
	if !ok {
		return fmt.Errorf("%w: field %q of type %s carries %T", ErrMalformedField, f.Name, f.Type, f.Attrs)
	}
	return nil
}

// renderFields renders every field block in input order.
func renderFields(fields []models.FieldDefinition, stamp time.Time, seq uint64) (string, error) {
	var b strings.Builder
	for i, f := range fields {
		el, err := fieldElement(f, i, stamp, seq)
		if err != nil {
			return "", err
		}
		el.write(&b, fieldIndent)
	}
	return b.String(), nil
}
