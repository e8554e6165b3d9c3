package validate

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

func field(name string, typ models.FieldType) models.FieldDefinition {
	return models.FieldSpec{Name: name, Type: typ}.Definition()
}

func TestModelAcceptsWellFormedNames(t *testing.T) {
	t.Parallel()

	names := []string{"m", "Author", "news-article", "news_article", "A1", "123", "-", "_x"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := Model(models.ModelDefinition{
				Name:   name,
				Fields: []models.FieldDefinition{field("headline", models.FieldTextSingle)},
			})
			assert.True(t, res.IsValid(), "got %s", res)
			assert.NoError(t, res.Err())
		})
	}
}

func TestModelRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		model      models.ModelDefinition
		wantReason string
		wantField  string
	}{
		{
			name:       "missing_name",
			model:      models.ModelDefinition{Fields: []models.FieldDefinition{field("a", models.FieldNumber)}},
			wantReason: "Model name is required",
			wantField:  "name",
		},
		{
			name:       "blank_name",
			model:      models.ModelDefinition{Name: "   "},
			wantReason: "Model name is required",
			wantField:  "name",
		},
		{
			name:       "name_with_invalid_characters",
			model:      models.ModelDefinition{Name: "My Model!", Fields: []models.FieldDefinition{field("a", models.FieldNumber)}},
			wantReason: "Model name can only contain letters, numbers, hyphens and underscores",
			wantField:  "name",
		},
		{
			name:       "no_fields",
			model:      models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{}},
			wantReason: "At least one field is required",
			wantField:  "fields",
		},
		{
			name: "field_missing_type",
			model: models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{
				field("ok", models.FieldBoolean),
				{Name: "broken"},
			}},
			wantReason: "All fields must have a name and type",
			wantField:  "broken",
		},
		{
			name:       "field_missing_name",
			model:      models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{field("", models.FieldBoolean)}},
			wantReason: "All fields must have a name and type",
		},
		{
			name:       "field_name_starts_with_digit",
			model:      models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{field("1bad", models.FieldTextSingle)}},
			wantReason: "Field name '1bad' must start with a letter and contain only letters, numbers, hyphens or underscores",
			wantField:  "1bad",
		},
		{
			name: "first_failing_field_wins",
			model: models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{
				field("good", models.FieldTextSingle),
				field("bad name", models.FieldTextSingle),
				field("9worse", models.FieldTextSingle),
			}},
			wantReason: "Field name 'bad name' must start with a letter and contain only letters, numbers, hyphens or underscores",
			wantField:  "bad name",
		},
		{
			name: "duplicate_field_name",
			model: models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{
				field("title", models.FieldTextSingle),
				field("title", models.FieldTextMulti),
			}},
			wantReason: "Field name 'title' is used more than once",
			wantField:  "title",
		},
		{
			name: "name_rule_checked_before_fields",
			model: models.ModelDefinition{Name: "bad name", Fields: []models.FieldDefinition{
				field("1bad", models.FieldTextSingle),
			}},
			wantReason: MsgModelNameFormat,
			wantField:  "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Model(tt.model)
			require.False(t, res.IsValid())
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantField, res.Field)
		})
	}
}

func TestUnrecognizedFieldTypePasses(t *testing.T) {
	t.Parallel()

	res := Model(models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{field("legacy", "geo-point")}})
	assert.True(t, res.IsValid())
}

func TestRequest(t *testing.T) {
	t.Parallel()

	valid := models.Request{
		Name:        "Author",
		ProjectName: "news",
		FolderName:  "News CF",
		Fields:      []models.FieldSpec{{Name: "headline", Type: models.FieldTextSingle, Required: true}},
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Request(valid).IsValid())
	})

	t.Run("project_required", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.ProjectName = ""
		assert.Equal(t, MsgProjectNameRequired, Request(req).Reason)
	})

	t.Run("project_lowercase_only", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.ProjectName = "News"
		assert.Equal(t, "Project name can only contain lowercase letters, numbers, and hyphens", Request(req).Reason)
	})

	t.Run("folder_required", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.FolderName = " \t"
		res := Request(req)
		assert.Equal(t, "Folder name cannot be empty", res.Reason)
		assert.Equal(t, "folderName", res.Field)
	})

	t.Run("model_name_with_trailing_whitespace", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.Name = "Author\t"
		res := Request(req)
		assert.Equal(t, MsgModelNameFormat, res.Reason)
		assert.Equal(t, "name", res.Field)
		assert.Equal(t, res, Model(models.ModelDefinition{Name: "Author\t", Fields: []models.FieldDefinition{field("headline", models.FieldTextSingle)}}))
	})

	t.Run("field_name_with_surrounding_spaces", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.Fields = []models.FieldSpec{{Name: " headline ", Type: models.FieldTextSingle}}
		res := Request(req)
		assert.Equal(t, "Field name ' headline ' must start with a letter and contain only letters, numbers, hyphens or underscores", res.Reason)
		assert.Equal(t, " headline ", res.Field)
	})

	t.Run("project_with_trailing_space", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.ProjectName = "news "
		assert.Equal(t, MsgProjectNameFormat, Request(req).Reason)
	})

	t.Run("folder_with_control_character", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.FolderName = "News\x01"
		res := Request(req)
		assert.Equal(t, MsgFolderNameText, res.Reason)
		assert.Equal(t, "folderName", res.Field)
	})

	t.Run("model_rules_run_first", func(t *testing.T) {
		t.Parallel()
		req := valid
		req.ProjectName = "BAD"
		req.Fields = nil
		assert.Equal(t, MsgFieldsRequired, Request(req).Reason)
	})
}

func TestSingleAttributeValidators(t *testing.T) {
	t.Parallel()

	assert.True(t, ModelName("Author").IsValid())
	assert.Equal(t, MsgModelNameFormat, ModelName("My Model!").Reason)
	assert.True(t, FieldName("headline").IsValid())
	assert.Equal(t, MsgFieldIncomplete, FieldName("").Reason)
	assert.False(t, FieldName("_x").IsValid())
	assert.True(t, ProjectName("my-site-2").IsValid())
	assert.False(t, ProjectName("my_site").IsValid())
	assert.False(t, FolderName("").IsValid())
}

func TestFieldTextMustBeXMLSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec models.FieldSpec
	}{
		{name: "label", spec: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle, Label: "Head\x01line"}},
		{name: "description", spec: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle, Description: "bad\x1b[0m"}},
		{name: "placeholder", spec: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle, Placeholder: "\x00"}},
		{name: "number_value", spec: models.FieldSpec{Name: "count", Type: models.FieldNumber, Value: "1\x02"}},
		{name: "boolean_text", spec: models.FieldSpec{Name: "featured", Type: models.FieldBoolean, Text: "\uFFFE"}},
		{name: "enumeration_option", spec: models.FieldSpec{Name: "color", Type: models.FieldEnumeration, Options: []string{"Red", "Bl\x07ue"}}},
		{name: "invalid_utf8", spec: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle, Label: "\xff"}},
		{name: "unknown_type_tag", spec: models.FieldSpec{Name: "legacy", Type: "geo\x01point"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Model(models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{tt.spec.Definition()}})
			require.False(t, res.IsValid())
			assert.Equal(t, fmt.Sprintf(MsgFieldText, tt.spec.Name), res.Reason)
			assert.Equal(t, tt.spec.Name, res.Field)
		})
	}
}

func TestFieldTextAllowsXMLWhitespaceAndUnicode(t *testing.T) {
	t.Parallel()

	def := models.FieldSpec{
		Name:        "body",
		Type:        models.FieldTextSingle,
		Label:       "Caf\u00e9 \U0001F600",
		Description: "line one\nline two\ttabbed\r\n\uFFFD",
	}.Definition()
	assert.True(t, Model(models.ModelDefinition{Name: "m", Fields: []models.FieldDefinition{def}}).IsValid())
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Valid", Valid.String())

	res := Result{Field: "name", Reason: MsgModelNameRequired}
	err := res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, MsgModelNameRequired, err.Error())

	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, "name", f.Field)
	assert.Equal(t, `Invalid("Model name is required")`, res.String())
}

func TestRunShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := func(fail bool) Rule {
		return func() *Failure {
			calls++
			if fail {
				return &Failure{Reason: "stop"}
			}
			return nil
		}
	}

	res := Run(counting(false), counting(true), counting(true))
	assert.Equal(t, "stop", res.Reason)
	assert.Equal(t, 2, calls)
}

func TestEachVisitsInOrder(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`^[a-z]+$`)
	rule := Each([]string{"ok", "Bad", "worse1"}, func(i int, s string) Rule {
		return Matches(s, s, re, s)
	})
	res := Run(rule)
	assert.Equal(t, "Bad", res.Reason)
	assert.True(t, Run(NotEmpty("xs", []int{1}, "empty")).IsValid())
}
