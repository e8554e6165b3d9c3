package config

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/cfbuilder/internal/defs"
)

// Environment variables recognized by the configuration layer.
const (
	EnvConfigDir = "CFBUILDER_CONFIG_DIR"
	EnvLogLevel  = "CFBUILDER_LOG_LEVEL"
	EnvLogFormat = "CFBUILDER_LOG_FORMAT"
	EnvNoColor   = "CFBUILDER_NO_COLOR"
	EnvProject   = "CFBUILDER_PROJECT"
	EnvFolder    = "CFBUILDER_FOLDER"
)

// managerState represents the lifecycle state of the ConfigManager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// @MX:ANCHOR: [AUTO] ConfigManager is the entry point for every configuration read and write
// @MX:REASON: [AUTO] the composition root, the wizard and the config commands all go through it
// ConfigManager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	state          managerState
	loader         *Loader
	loadedSections map[string]bool
	logger         *slog.Logger
}

// NewConfigManager creates a new ConfigManager instance in uninitialized state.
// A nil logger discards output.
func NewConfigManager(logger *slog.Logger) *ConfigManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConfigManager{
		loader: NewLoader(logger),
		state:  stateUninitialized,
		logger: logger,
	}
}

// Load reads configuration from the project root's .cfbuilder/ directory.
// It merges file values with compiled defaults and applies environment
// variable overrides. The configuration is validated before being stored.
func (m *ConfigManager) Load(projectRoot string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadLocked(projectRoot)
	if err != nil {
		return nil, err
	}

	m.config = cfg
	m.root = projectRoot
	m.state = stateInitialized

	return cfg, nil
}

// loadLocked reads, overrides and validates. Caller must hold Lock.
func (m *ConfigManager) loadLocked(projectRoot string) (*Config, error) {
	cfg, err := m.loader.Load(configDir(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Track which sections were loaded from files
	m.loadedSections = m.loader.LoadedSections()

	// Apply environment variable overrides (higher priority than files)
	applyEnvOverrides(cfg)

	// Validate the merged configuration
	if err := Validate(cfg, m.loadedSections); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// LoadedSections reports which sections came from files rather than defaults.
func (m *ConfigManager) LoadedSections() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.loadedSections)
}

// SectionsDir returns the directory section files are read from and saved to.
func (m *ConfigManager) SectionsDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filepath.Join(configDir(m.root), filepath.FromSlash(defs.SectionsSubdir))
}

// GetSection returns a named configuration section.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
func (m *ConfigManager) GetSection(name string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == stateUninitialized {
		return nil, ErrNotInitialized
	}

	switch name {
	case "builder":
		return m.config.Builder, nil
	case "system":
		return m.config.System, nil
	default:
		return nil, ErrSectionNotFound
	}
}

// SetSection updates a named configuration section in memory.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
// Returns ErrSectionTypeMismatch if the value type does not match.
func (m *ConfigManager) SetSection(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	switch name {
	case "builder":
		v, ok := value.(BuilderConfig)
		if !ok {
			return fmt.Errorf("%w: expected BuilderConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Builder = v
	case "system":
		v, ok := value.(SystemConfig)
		if !ok {
			return fmt.Errorf("%w: expected SystemConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.System = v
	default:
		return ErrSectionNotFound
	}
	return nil
}

// Save persists the current configuration to disk atomically.
// Each section is saved to its corresponding YAML file using
// temp file + os.Rename for atomic writes.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	if err := Validate(m.config, map[string]bool{"builder": true, "system": true}); err != nil {
		return err
	}

	sectionsDir := filepath.Join(configDir(m.root), filepath.FromSlash(defs.SectionsSubdir))

	// Ensure directory exists
	if err := os.MkdirAll(sectionsDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := saveSection(sectionsDir, defs.BuilderYAML, builderFileWrapper{Builder: m.config.Builder}); err != nil {
		return fmt.Errorf("save builder config: %w", err)
	}
	if err := saveSection(sectionsDir, defs.SystemYAML, systemFileWrapper{System: m.config.System}); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}

	m.logger.Debug("saved configuration", "dir", sectionsDir)
	return nil
}

// Reload forces a re-read from disk, replacing the in-memory configuration.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	cfg, err := m.loadLocked(m.root)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	m.config = cfg
	return nil
}

// configDir resolves the .cfbuilder directory, honoring CFBUILDER_CONFIG_DIR.
func configDir(projectRoot string) string {
	if envDir := os.Getenv(EnvConfigDir); envDir != "" {
		return filepath.Clean(envDir)
	}
	return filepath.Join(filepath.Clean(projectRoot), defs.ConfigDir)
}

// SystemFromEnv returns the default system section with environment
// overrides applied. It is available before any file is read.
func SystemFromEnv() SystemConfig {
	sys := NewDefaultSystemConfig()
	applySystemEnv(&sys)
	return sys
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config) {
	applySystemEnv(&cfg.System)
	if project := os.Getenv(EnvProject); project != "" {
		cfg.Builder.DefaultProject = project
	}
	if folder := os.Getenv(EnvFolder); folder != "" {
		cfg.Builder.DefaultFolder = folder
	}
}

func applySystemEnv(sys *SystemConfig) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		sys.LogLevel = strings.ToLower(level)
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		sys.LogFormat = strings.ToLower(format)
	}
	if noColor := os.Getenv(EnvNoColor); noColor == "true" || noColor == "1" {
		sys.NoColor = true
	}
}

// saveSection marshals data to YAML and writes it atomically.
func saveSection(dir, filename string, data any) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	path := filepath.Join(dir, filename)
	return atomicWrite(path, yamlData)
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cfbuilder-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
