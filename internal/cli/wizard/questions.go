package wizard

import (
	"github.com/modu-ai/cfbuilder/internal/validate"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Question IDs.
const (
	idModelName         = "model_name"
	idProjectName       = "project_name"
	idFolderName        = "folder_name"
	idKeepDefaultFields = "keep_default_fields"
	idAddField          = "add_field"
	idFieldName         = "field_name"
	idFieldType         = "field_type"
	idFieldOptions      = "field_options"
	idFieldValidation   = "field_validation"
	idFieldDefault      = "field_default"
)

// ModelQuestions returns the model-level questions asked once per run.
func ModelQuestions(cfg Config) []Question {
	return []Question{
		{
			ID:          idModelName,
			Type:        QuestionTypeInput,
			Title:       "Model Name",
			Description: "Letters, numbers, hyphens and underscores",
			Required:    true,
			Validate:    func(v string) error { return validate.ModelName(v).Err() },
		},
		{
			ID:          idProjectName,
			Type:        QuestionTypeInput,
			Title:       "Project Name",
			Description: "Lowercase letters, numbers and hyphens",
			Default:     cfg.DefaultProject,
			Required:    true,
			Validate:    func(v string) error { return validate.ProjectName(v).Err() },
		},
		{
			ID:       idFolderName,
			Type:     QuestionTypeInput,
			Title:    "CF Folder Name",
			Default:  cfg.DefaultFolder,
			Required: true,
		},
		{
			ID:      idKeepDefaultFields,
			Type:    QuestionTypeConfirm,
			Title:   "Start with the default fields?",
			Default: "true",
			Condition: func(r *WizardResult) bool {
				return len(r.Fields) > 0
			},
		},
	}
}

// AddFieldQuestion asks whether another field should be described.
// The default is yes while the model has no fields.
func AddFieldQuestion(r *WizardResult) Question {
	def := "false"
	if len(r.Fields) == 0 {
		def = "true"
	}
	return Question{
		ID:      idAddField,
		Type:    QuestionTypeConfirm,
		Title:   "Add a field?",
		Default: def,
	}
}

// FieldQuestions returns the questions describing one field.
func FieldQuestions(cfg Config) []Question {
	return []Question{
		{
			ID:       idFieldName,
			Type:     QuestionTypeInput,
			Title:    "Field name",
			Required: true,
			Validate: func(v string) error { return validate.FieldName(v).Err() },
		},
		{
			ID:      idFieldType,
			Type:    QuestionTypeSelect,
			Title:   "Field type",
			Options: choiceOptions(cfg.FieldTypes),
			Default: string(models.FieldTextSingle),
		},
		{
			ID:          idFieldOptions,
			Type:        QuestionTypeInput,
			Title:       "Options (comma separated)",
			Description: "Option 1, Option 2, Option 3",
			Condition: func(r *WizardResult) bool {
				return r.Draft.Type.Canonical() == models.FieldEnumeration
			},
		},
		{
			ID:      idFieldValidation,
			Type:    QuestionTypeSelect,
			Title:   "Validation",
			Options: choiceOptions(cfg.ValidationTypes),
			Default: models.ValidationOptional,
		},
		{
			ID:    idFieldDefault,
			Type:  QuestionTypeInput,
			Title: "Default value",
			Condition: func(r *WizardResult) bool {
				t := r.Draft.Type.Canonical()
				return t == models.FieldTextSingle || t == models.FieldNumber || t == models.FieldDateTime
			},
		},
	}
}

// choiceOptions converts configured choices into select options.
func choiceOptions(choices []models.Choice) []Option {
	opts := make([]Option, len(choices))
	for i, c := range choices {
		opts[i] = Option{Label: c.Label, Value: c.Value}
	}
	return opts
}

// FilteredQuestions returns only the questions whose conditions are met.
func FilteredQuestions(questions []Question, result *WizardResult) []Question {
	var filtered []Question
	for _, q := range questions {
		if q.Condition == nil || q.Condition(result) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// QuestionByID finds a question by its ID. Returns nil if not found.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
