package config

import (
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultProject    = "myproject"
	DefaultFolder     = "CF Folder Name"
	DefaultModifiedBy = "admin"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Builder: NewDefaultBuilderConfig(),
		System:  NewDefaultSystemConfig(),
	}
}

// NewDefaultBuilderConfig returns a BuilderConfig with default values.
// DefaultFields is intentionally empty; a new model starts without fields.
func NewDefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		FieldTypes:      NewDefaultFieldTypes(),
		ValidationTypes: NewDefaultValidationTypes(),
		DefaultProject:  DefaultProject,
		DefaultFolder:   DefaultFolder,
		ModifiedBy:      DefaultModifiedBy,
	}
}

// NewDefaultFieldTypes returns the field type options offered by the form.
func NewDefaultFieldTypes() []models.Choice {
	return []models.Choice{
		{Label: "Single Line Text", Value: string(models.FieldTextSingle)},
		{Label: "Multi-line Text", Value: string(models.FieldTextMulti)},
		{Label: "Number", Value: string(models.FieldNumber)},
		{Label: "Boolean", Value: string(models.FieldBoolean)},
		{Label: "Date/Time", Value: string(models.FieldDateTime)},
		{Label: "Enumeration", Value: string(models.FieldEnumeration)},
	}
}

// NewDefaultValidationTypes returns the validation options offered by the form.
func NewDefaultValidationTypes() []models.Choice {
	return []models.Choice{
		{Label: "Required", Value: models.ValidationRequired},
		{Label: "Optional", Value: models.ValidationOptional},
	}
}

// NewDefaultSystemConfig returns a SystemConfig with default values.
func NewDefaultSystemConfig() SystemConfig {
	return SystemConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}
