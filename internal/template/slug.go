package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug derives the on-disk identifier of a model from its display name:
// lower-cased, with each run of whitespace replaced by a single hyphen.
func Slug(name string) string {
	lower := cases.Lower(language.Und).String(norm.NFC.String(name))
	return whitespaceRun.ReplaceAllString(lower, "-")
}

// NodeName returns slug as a repository node name usable as an XML element
// name. A first character XML does not allow to start a name is encoded
// the ISO 9075 way (a leading "1" becomes "_x0031_").
func NodeName(slug string) string {
	if slug == "" {
		return slug
	}
	first := []rune(slug)[0]
	if unicode.IsLetter(first) || first == '_' {
		return slug
	}
	return fmt.Sprintf("_x%04x_", first) + strings.TrimPrefix(slug, string(first))
}
