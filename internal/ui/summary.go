package ui

import (
	"fmt"
	"strings"
)

// Summary describes the outcome of one create run.
type Summary struct {
	Model    string   // Model display name.
	ModelDir string   // Directory holding the model descriptor.
	Files    []string // Files written, or planned in a dry run.
	DryRun   bool
}

// RenderSummary renders s as a bordered card.
func RenderSummary(theme *Theme, s Summary) string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString(theme.Title(fmt.Sprintf("Content Fragment Model '%s' (dry run)", s.Model)))
		b.WriteString("\n")
		b.WriteString(theme.Muted("No files were written. Would write:"))
	} else {
		b.WriteString(theme.Success(fmt.Sprintf("Content Fragment Model '%s' created successfully at: %s", s.Model, s.ModelDir)))
	}
	for _, f := range s.Files {
		b.WriteString("\n  ")
		b.WriteString(theme.Muted("-"))
		b.WriteString(" ")
		b.WriteString(f)
	}
	return theme.Card(b.String())
}
