package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/modu-ai/cfbuilder/internal/cli/wizard"
	"github.com/modu-ai/cfbuilder/internal/core/scaffold"
	"github.com/modu-ai/cfbuilder/internal/template"
	"github.com/modu-ai/cfbuilder/internal/ui"
	"github.com/modu-ai/cfbuilder/internal/validate"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [destination]",
		Short: "Create a Content Fragment Model",
		Long: `Create a Content Fragment Model and write its descriptors below destination.

Usage patterns:
  cfbuilder create                       Run the form, write into the current directory
  cfbuilder create ./out -f author.yaml  Read the model from a file
  cfbuilder create --name Author --field headline:text-single:required

The form runs only on a terminal and only when neither --file nor --name
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCreate,
	}

	addRequestFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "List the files that would be written without writing them")
	cmd.Flags().Bool("non-interactive", false, "Never run the form")
	return cmd
}

// @MX:ANCHOR: [AUTO] runCreate is the create command's workflow
// @MX:REASON: [AUTO] builds the request from every input source and hands it to the scaffolder
// runCreate gathers the request, runs the scaffolder and prints a summary.
func runCreate(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	dest := "."
	if len(args) > 0 {
		dest = args[0]
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	if shouldRunWizard(cmd, req) {
		answered, err := runWizard(req)
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Model creation cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}
		req = answered
	}
	req = withConfigDefaults(req)

	dryRun := getBoolFlag(cmd, "dry-run")
	sess := scaffold.Session{
		Request:     req,
		Destination: dest,
		DryRun:      dryRun,
	}

	progress := ui.NewProgress(deps.Theme, deps.Headless, cmd.ErrOrStderr())
	var bar ui.ProgressBar
	var spin ui.Spinner
	if dryRun {
		spin = progress.Spinner("Planning " + req.Name)
	} else {
		bar = progress.Start("Writing descriptors", template.DocumentCount())
		sess.Reporter = scaffold.ReporterFunc(func(_, _ int, absPath string) {
			bar.SetTitle(filepath.Base(filepath.Dir(absPath)) + "/" + filepath.Base(absPath))
			bar.Increment(1)
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := deps.Scaffolder.Run(ctx, sess)
	if bar != nil {
		bar.Done()
	}
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		if res != nil && len(res.Written) > 0 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), deps.Theme.Muted(fmt.Sprintf("%d files were written before the failure:", len(res.Written))))
			for _, p := range res.Written {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "  "+p)
			}
		}
		if errors.Is(err, validate.ErrValidation) {
			return err
		}
		return fmt.Errorf("create content fragment model: %w", err)
	}

	files := res.Written
	if dryRun {
		files = res.Targets()
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSummary(deps.Theme, ui.Summary{
		Model:    res.Model.Name,
		ModelDir: res.ModelDir,
		Files:    files,
		DryRun:   dryRun,
	}))
	return nil
}

// shouldRunWizard reports whether the form should collect the request.
func shouldRunWizard(cmd *cobra.Command, req models.Request) bool {
	if getBoolFlag(cmd, "non-interactive") || deps.Headless.IsHeadless() {
		return false
	}
	return getStringFlag(cmd, "file") == "" && req.Name == ""
}

// runWizard runs the form seeded with the configured option lists and any
// values already given as flags.
func runWizard(seed models.Request) (models.Request, error) {
	b := deps.Config.Get().Builder

	cfg := wizard.Config{
		FieldTypes:      b.FieldTypes,
		ValidationTypes: b.ValidationTypes,
		DefaultFields:   slices.Concat(b.DefaultFields, seed.Fields),
		DefaultProject:  firstNonEmpty(seed.ProjectName, b.DefaultProject),
		DefaultFolder:   firstNonEmpty(seed.FolderName, b.DefaultFolder),
		NoColor:         deps.Theme.NoColor,
	}

	result, err := wizard.Run(cfg)
	if err != nil {
		return models.Request{}, err
	}
	return result.Request(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
