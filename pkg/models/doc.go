// Package models provides the shared data model for cfbuilder.
//
// It contains the content fragment model types that flow through the
// validator, the generator and the CLI.
//
// # Field Types
//
// A field is one of six wire types used by the form:
//   - text-single: single line text (textfield)
//   - text-multi: multi line rich text (multieditor)
//   - number: numeric input (numberfield)
//   - boolean: checkbox
//   - datetime: date picker ("date" is accepted as a legacy alias)
//   - enumeration: select with a fixed option list
//
// Any other non-empty tag is kept as an unrecognized type and rendered as a
// plain text field.
//
// # Requests and Definitions
//
// [Request] is the flat shape submitted by a form, a flag set or a request
// file. [Request.Definition] converts it into a [ModelDefinition] whose fields
// carry typed attributes:
//
//	def := req.Definition()
//	for _, f := range def.Fields {
//	    switch a := f.Attrs.(type) {
//	    case models.TextAttrs:
//	        fmt.Println(f.Name, a.MaxLength)
//	    }
//	}
package models
