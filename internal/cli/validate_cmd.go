package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/cfbuilder/internal/validate"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a model request against the naming rules",
		Long: `Check a model request without generating anything. Prints OK when the
request is valid; otherwise prints the first failing rule and exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
	addRequestFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	req = withConfigDefaults(req)

	res := validate.Request(req)
	if !res.IsValid() {
		return res.Err()
	}

	theme := deps.Theme
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		theme.Success("OK"),
		theme.Muted(fmt.Sprintf("%s (%d fields)", req.Definition().Name, len(req.Fields))),
	)
	return nil
}
