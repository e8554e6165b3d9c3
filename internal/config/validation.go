package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/modu-ai/cfbuilder/internal/validate"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks the configuration for correctness.
// The loadedSections map indicates which sections were loaded from YAML files
// (as opposed to using defaults). Option lists are only required for
// sections that were explicitly loaded.
func Validate(cfg *Config, loadedSections map[string]bool) error {
	var errs []ValidationError

	errs = append(errs, validateSystem(&cfg.System)...)
	errs = append(errs, validateBuilder(&cfg.Builder, loadedSections["builder"])...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateSystem checks log settings.
func validateSystem(s *SystemConfig) []ValidationError {
	var errs []ValidationError

	if s.LogLevel != "" && !slices.Contains(validLogLevels, s.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   s.LogLevel,
			Wrapped: ErrInvalidLogLevel,
		})
	}
	if s.LogFormat != "" && !slices.Contains(validLogFormats, s.LogFormat) {
		errs = append(errs, ValidationError{
			Field:   "system.log_format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
			Value:   s.LogFormat,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateBuilder checks the form configuration. Default project and fields
// go through the same rules a submitted model does.
func validateBuilder(b *BuilderConfig, loaded bool) []ValidationError {
	var errs []ValidationError

	if loaded && len(b.FieldTypes) == 0 {
		errs = append(errs, ValidationError{
			Field:   "builder.field_types",
			Message: "at least one field type option is required; remove the key to use the built-in list",
			Wrapped: ErrInvalidConfig,
		})
	}
	for i, c := range b.FieldTypes {
		if strings.TrimSpace(c.Value) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("builder.field_types[%d].value", i),
				Message: "required field is empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	for i, c := range b.ValidationTypes {
		if c.Value != models.ValidationRequired && c.Value != models.ValidationOptional {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("builder.validation_types[%d].value", i),
				Message: "must be one of: required, optional",
				Value:   c.Value,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if b.DefaultProject != "" {
		if res := validate.ProjectName(b.DefaultProject); !res.IsValid() {
			errs = append(errs, ValidationError{
				Field:   "builder.default_project",
				Message: res.Reason,
				Value:   b.DefaultProject,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	for i, f := range b.DefaultFields {
		def := f.Definition()
		if res := validate.FieldName(def.Name); !res.IsValid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("builder.default_fields[%d].name", i),
				Message: res.Reason,
				Value:   f.Name,
				Wrapped: ErrInvalidDefaultField,
			})
			continue
		}
		if def.Type == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("builder.default_fields[%d].type", i),
				Message: validate.MsgFieldIncomplete,
				Wrapped: ErrInvalidDefaultField,
			})
		}
	}

	return errs
}

