package config

import (
	"slices"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Config is the root configuration aggregate containing all sections.
type Config struct {
	Builder BuilderConfig `yaml:"builder"`
	System  SystemConfig  `yaml:"system"`
}

// BuilderConfig is the form configuration: the option lists offered to the
// user and the values a new model starts with. It has no effect on how a
// submitted model is validated or rendered.
type BuilderConfig struct {
	FieldTypes      []models.Choice    `yaml:"field_types"`
	ValidationTypes []models.Choice    `yaml:"validation_types"`
	DefaultFields   []models.FieldSpec `yaml:"default_fields"`
	DefaultProject  string             `yaml:"default_project"`
	DefaultFolder   string             `yaml:"default_folder"`
	ModifiedBy      string             `yaml:"modified_by"` // Recorded as cq:lastModifiedBy.
}

// SystemConfig represents the system configuration section.
type SystemConfig struct {
	Version        string `yaml:"version"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	NoColor        bool   `yaml:"no_color"`
	NonInteractive bool   `yaml:"non_interactive"`
}

// sectionNames lists all valid configuration section names.
var sectionNames = []string{"builder", "system"}

// IsValidSectionName checks if the given name is a valid section name.
func IsValidSectionName(name string) bool {
	return slices.Contains(sectionNames, name)
}

// ValidSectionNames returns all valid section names.
func ValidSectionNames() []string {
	result := make([]string, len(sectionNames))
	copy(result, sectionNames)
	return result
}

// YAML file wrapper types for proper unmarshaling with top-level keys.
// Each section file wraps its content under a top-level key.

type builderFileWrapper struct {
	Builder BuilderConfig `yaml:"builder"`
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}
