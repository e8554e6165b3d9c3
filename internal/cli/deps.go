// Package cli provides the Cobra command tree and dependency injection
// wiring for the cfbuilder CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/modu-ai/cfbuilder/internal/config"
	"github.com/modu-ai/cfbuilder/internal/core/scaffold"
	"github.com/modu-ai/cfbuilder/internal/template"
	"github.com/modu-ai/cfbuilder/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config     *config.ConfigManager
	Scaffolder scaffold.Scaffolder
	Headless   *ui.HeadlessManager
	Theme      *ui.Theme
	Logger     *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// DepsOptions controls how InitDependencies builds the dependency graph.
type DepsOptions struct {
	ProjectRoot string    // Directory holding .cfbuilder/.
	Verbose     bool      // Enable log output.
	NoColor     bool      // Disable styling regardless of config.
	LogWriter   io.Writer // Destination of log output when enabled.
}

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] called from the root command's PersistentPreRunE and from tests
// InitDependencies loads configuration and wires the scaffolder, UI and
// logger. It should be called once per process.
func InitDependencies(opts DepsOptions) error {
	// Section files can change the level and format, so configuration
	// loading logs through a logger built from defaults and environment.
	bootSystem := config.SystemFromEnv()
	cfgMgr := config.NewConfigManager(newLogger(bootSystem, opts.Verbose, opts.LogWriter))
	cfg, err := cfgMgr.Load(opts.ProjectRoot)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.System, opts.Verbose, opts.LogWriter)

	renderer, err := template.NewEmbeddedRenderer()
	if err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}
	generator := template.NewGenerator(renderer,
		template.WithModifiedBy(cfg.Builder.ModifiedBy),
		template.WithLogger(logger),
	)

	headless := ui.NewHeadlessManager()
	if cfg.System.NonInteractive {
		headless.ForceHeadless(true)
	}

	deps = &Dependencies{
		Config:     cfgMgr,
		Scaffolder: scaffold.NewScaffolder(generator, logger),
		Headless:   headless,
		Theme:      ui.NewTheme(opts.NoColor || cfg.System.NoColor),
		Logger:     logger,
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// newLogger disables logging for CLI commands unless verbose output was
// requested. Level and format come from the system section.
func newLogger(sys config.SystemConfig, verbose bool, w io.Writer) *slog.Logger {
	if !verbose || w == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	hopts := &slog.HandlerOptions{Level: parseLevel(sys.LogLevel)}
	if sys.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// parseLevel maps a configured level name onto slog. Unknown names fall
// back to info; config validation rejects them earlier.
func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
