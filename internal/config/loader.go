package config

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/cfbuilder/internal/defs"
)

// Loader reads configuration from YAML section files.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu             sync.RWMutex
	loadedSections map[string]bool
	logger         *slog.Logger
}

// NewLoader creates a new Loader instance. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// Load reads all configuration section files from the given .cfbuilder
// directory and returns a merged Config with defaults applied for missing
// fields. Missing files use default values. Invalid YAML is an error.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedSections = make(map[string]bool)
	cfg := NewDefaultConfig()

	sectionsDir := filepath.Join(filepath.Clean(configDir), filepath.FromSlash(defs.SectionsSubdir))

	// If sections directory does not exist, return defaults
	if _, err := os.Stat(sectionsDir); os.IsNotExist(err) {
		l.logger.Debug("config sections directory not found, using defaults", "path", sectionsDir)
		return cfg, nil
	}

	if err := l.loadBuilderSection(sectionsDir, cfg); err != nil {
		return nil, err
	}
	if err := l.loadSystemSection(sectionsDir, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were successfully loaded from YAML files.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]bool, len(l.loadedSections))
	maps.Copy(result, l.loadedSections)
	return result
}

// loadBuilderSection loads the builder section from builder.yaml.
// Keys absent from the file keep their defaults.
func (l *Loader) loadBuilderSection(dir string, cfg *Config) error {
	wrapper := &builderFileWrapper{Builder: cfg.Builder}
	loaded, err := loadYAMLFile(dir, defs.BuilderYAML, wrapper)
	if err != nil {
		return fmt.Errorf("load builder config: %w", err)
	}
	if loaded {
		cfg.Builder = wrapper.Builder
		l.loadedSections["builder"] = true
		l.logger.Debug("loaded config section", "section", "builder")
	}
	return nil
}

// loadSystemSection loads the system section from system.yaml.
func (l *Loader) loadSystemSection(dir string, cfg *Config) error {
	wrapper := &systemFileWrapper{System: cfg.System}
	loaded, err := loadYAMLFile(dir, defs.SystemYAML, wrapper)
	if err != nil {
		return fmt.Errorf("load system config: %w", err)
	}
	if loaded {
		cfg.System = wrapper.System
		l.loadedSections["system"] = true
		l.logger.Debug("loaded config section", "section", "system")
	}
	return nil
}

// loadYAMLFile reads a YAML file from the given directory and unmarshals it
// into the target struct. Returns (true, nil) if the file was found and parsed,
// (false, nil) if the file does not exist, or (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", filename, ErrInvalidYAML, err)
	}

	return true, nil
}
