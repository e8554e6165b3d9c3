package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/modu-ai/cfbuilder/internal/defs"
	"github.com/modu-ai/cfbuilder/pkg/version"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfbuilder",
		Short: "Scaffold AEM Content Fragment Models",
		Long: `cfbuilder collects a Content Fragment Model definition (interactively,
from flags or from a JSON/YAML request file), validates it against the
naming rules and writes the .content.xml descriptors AEM expects.`,
		Version:           version.GetVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: initRuntime,
	}
	root.SetVersionTemplate(fmt.Sprintf("cfbuilder %s\n", version.GetFullVersion()))

	root.PersistentFlags().BoolP("verbose", "v", false, "Write logs to stderr")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().String("root", "", "Directory holding .cfbuilder/ (default: current directory)")

	root.AddCommand(newCreateCmd(), newValidateCmd(), newPreviewCmd(), newConfigCmd())
	return root
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the cfbuilder CLI
// @MX:REASON: [AUTO] called from cmd/cfbuilder/main.go
// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initRuntime loads .env and wires dependencies unless a test already did.
func initRuntime(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(defs.EnvFile); err != nil {
		return err
	}
	if deps != nil {
		return nil
	}

	root := getStringFlag(cmd, "root")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		root = cwd
	}

	return InitDependencies(DepsOptions{
		ProjectRoot: root,
		Verbose:     getBoolFlag(cmd, "verbose"),
		NoColor:     getBoolFlag(cmd, "no-color"),
		LogWriter:   cmd.ErrOrStderr(),
	})
}

// loadEnvFile loads variables from path without overriding the environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
