package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/modu-ai/cfbuilder/internal/core/scaffold"
	"github.com/modu-ai/cfbuilder/internal/template"
	"github.com/modu-ai/cfbuilder/internal/ui"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Preview output formats.
const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatXML      = "xml"
)

var previewFormats = []string{formatMarkdown, formatJSON, formatXML}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what create would produce",
		Long: `Show a model request without writing anything.

Formats:
  markdown   Summary table of the model and its fields (default)
  json       The request after defaults are applied
  xml        Every generated descriptor, in write order`,
		Args:    cobra.NoArgs,
		PreRunE: validatePreviewFlags,
		RunE:    runPreview,
	}
	addRequestFlags(cmd)
	cmd.Flags().String("format", formatMarkdown, "Output format: markdown, json or xml")
	return cmd
}

// validatePreviewFlags validates flag values before execution.
func validatePreviewFlags(cmd *cobra.Command, _ []string) error {
	format := getStringFlag(cmd, "format")
	if !slices.Contains(previewFormats, format) {
		return fmt.Errorf("invalid --format value %q: must be one of: %s", format, strings.Join(previewFormats, ", "))
	}
	return nil
}

func runPreview(cmd *cobra.Command, _ []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	req = withConfigDefaults(req)
	out := cmd.OutOrStdout()

	if getStringFlag(cmd, "format") == formatJSON {
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	spin := ui.NewProgress(deps.Theme, deps.Headless, cmd.ErrOrStderr()).Spinner("Planning " + req.Name)
	plan, err := deps.Scaffolder.Plan(req)
	if err != nil {
		spin.Stop()
		return err
	}

	if getStringFlag(cmd, "format") == formatXML {
		spin.Stop()
		for _, doc := range plan.Documents {
			_, _ = fmt.Fprintf(out, "<!-- %s -->\n%s\n", doc.Path, doc.Body)
		}
		return nil
	}

	spin.SetTitle("Rendering preview")
	rendered, err := renderMarkdown(previewMarkdown(plan), deps.Theme.NoColor || deps.Headless.IsHeadless())
	spin.Stop()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from user-entered text before it is embedded
// in the markdown preview.
func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := strings.TrimSpace(textPolicy.Sanitize(raw))
	return strings.ReplaceAll(cleaned, "|", `\|`)
}

// previewMarkdown builds the markdown summary of a planned model.
func previewMarkdown(plan *scaffold.Result) string {
	m := plan.Model
	slug := template.Slug(m.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "# Content Fragment Model: %s\n\n", sanitizeText(m.Name))
	fmt.Fprintf(&b, "| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Project | %s |\n", sanitizeText(m.ProjectName))
	fmt.Fprintf(&b, "| Folder | %s |\n", sanitizeText(m.FolderName))
	fmt.Fprintf(&b, "| Model directory | `%s` |\n", plan.ModelDir)
	fmt.Fprintf(&b, "| Scaffolding | `%s` |\n\n", template.ScaffoldingPath(m.ProjectName, slug))

	fmt.Fprintf(&b, "## Fields\n\n| # | Name | Type | Label | Required | Details |\n|---|---|---|---|---|---|\n")
	for i, f := range m.Fields {
		required := "no"
		if f.Required {
			required = "yes"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			sanitizeText(f.Name),
			sanitizeText(string(f.Type)),
			sanitizeText(f.DisplayLabel()),
			required,
			sanitizeText(fieldDetails(f)),
		)
	}

	fmt.Fprintf(&b, "\n## Files\n\n")
	for _, p := range plan.Documents.Paths() {
		fmt.Fprintf(&b, "- `%s`\n", p)
	}
	return b.String()
}

// fieldDetails summarizes the type-specific attributes of f.
func fieldDetails(f models.FieldDefinition) string {
	switch a := f.Attrs.(type) {
	case models.TextAttrs:
		return fmt.Sprintf("max length %d", a.MaxLength)
	case models.MultiTextAttrs:
		return a.MimeType
	case models.NumberAttrs:
		return fmt.Sprintf("%s, step %g", a.NumberType, a.Step)
	case models.BooleanAttrs:
		return fmt.Sprintf("checked: %t", a.Checked)
	case models.DateTimeAttrs:
		if a.Value != "" {
			return "default " + a.Value
		}
		return ""
	case models.EnumerationAttrs:
		return strings.Join(a.Options, ", ")
	default:
		return "rendered as text"
	}
}

// renderMarkdown renders md for the terminal. Plain output uses the notty
// style so pipes and logs get no escape sequences.
func renderMarkdown(md string, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
