package template

import "strings"

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// XMLEscape escapes the five characters XML reserves so s can be embedded
// in an attribute value or in character data.
func XMLEscape(s string) string {
	return xmlReplacer.Replace(s)
}
