package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/cfbuilder/internal/config"
	"github.com/modu-ai/cfbuilder/internal/defs"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cfbuilder configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default section files",
		Long: `Write the default builder and system section files to
.cfbuilder/config/sections/. Existing files are kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite existing section files")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().String("section", "", "Print one section only: "+strings.Join(config.ValidSectionNames(), " or "))

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	mgr := deps.Config
	dir := mgr.SectionsDir()

	if !getBoolFlag(cmd, "force") {
		for _, name := range []string{defs.BuilderYAML, defs.SystemYAML} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check %s: %w", path, err)
			}
		}
	}

	if err := mgr.SetSection("builder", config.NewDefaultBuilderConfig()); err != nil {
		return err
	}
	if err := mgr.SetSection("system", config.NewDefaultSystemConfig()); err != nil {
		return err
	}
	if err := mgr.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	// Environment overrides still win over the files just written.
	if err := mgr.Reload(); err != nil {
		return err
	}

	deps.Logger.Info("configuration initialized", "dir", dir)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", deps.Theme.Success("Wrote"), dir)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	mgr := deps.Config
	cfg := mgr.Get()
	if cfg == nil {
		return config.ErrNotInitialized
	}

	var doc any = cfg
	if name := getStringFlag(cmd, "section"); name != "" {
		sec, err := mgr.GetSection(name)
		if err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		doc = map[string]any{name: sec}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	var sources []string
	loaded := mgr.LoadedSections()
	for _, name := range config.ValidSectionNames() {
		src := "defaults"
		if loaded[name] {
			src = "file"
		}
		sources = append(sources, name+"="+src)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, deps.Theme.Muted("# "+mgr.SectionsDir()+" ("+strings.Join(sources, ", ")+")"))
	_, _ = fmt.Fprint(out, string(data))
	return nil
}
