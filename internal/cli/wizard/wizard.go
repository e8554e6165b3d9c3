package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/modu-ai/cfbuilder/internal/ui"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// @MX:ANCHOR: [AUTO] Run drives the whole interactive model definition
// @MX:REASON: [AUTO] the create command's only interactive input path
// Run asks the model questions, then loops over field descriptions until
// the user declines to add another field.
func Run(cfg Config) (*WizardResult, error) {
	result := &WizardResult{Fields: slices.Clone(cfg.DefaultFields)}
	theme := newWizardTheme(cfg.NoColor)

	if err := ask(ModelQuestions(cfg), result, theme); err != nil {
		return nil, err
	}

	for {
		if err := ask([]Question{AddFieldQuestion(result)}, result, theme); err != nil {
			return nil, err
		}
		if !result.AddAnother {
			break
		}
		if err := ask(FieldQuestions(cfg), result, theme); err != nil {
			return nil, err
		}
		result.commitDraft()
	}

	return result, nil
}

// Ask runs questions against result using the default theme.
func Ask(questions []Question, result *WizardResult) error {
	return ask(questions, result, newWizardTheme(false))
}

// ask runs each question as its own huh.Form to avoid the huh v0.8.x
// YOffset scroll bug that occurs when multiple groups share a single viewport.
func ask(questions []Question, result *WizardResult, theme *huh.Theme) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	for i := range questions {
		q := &questions[i]

		// Conditions see answers given earlier in the same run.
		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		form := huh.NewForm(buildQuestionGroup(q, result)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return ErrCancelled
			}
			return fmt.Errorf("wizard error: %w", err)
		}
	}
	return nil
}

// buildQuestionGroup creates a huh.Group for a single question.
func buildQuestionGroup(q *Question, result *WizardResult) *huh.Group {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, result)
	case QuestionTypeConfirm:
		field = buildConfirmField(q, result)
	default:
		field = buildInputField(q, result)
	}

	g := huh.NewGroup(field)
	if q.Condition != nil {
		cond := q.Condition
		g = g.WithHideFunc(func() bool {
			return !cond(result)
		})
	}
	return g
}

// buildSelectField creates a huh.Select field for a select-type question.
// Options are static; OptionsFunc would force a fixed height and re-trigger
// the viewport scroll bug.
func buildSelectField(q *Question, result *WizardResult) *huh.Select[string] {
	selected := q.Default

	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected)

	qID := q.ID
	sel.Validate(func(val string) error {
		saveAnswer(qID, val, result)
		return nil
	})
	return sel
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, result *WizardResult) *huh.Input {
	value := q.Default

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	qID := q.ID
	required := q.Required
	defVal := q.Default
	check := q.Validate
	return inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && defVal != "" {
			v = defVal
		}
		if required && v == "" {
			return errors.New("this field is required")
		}
		if check != nil && v != "" {
			if err := check(v); err != nil {
				return err
			}
		}
		saveAnswer(qID, v, result)
		return nil
	})
}

// buildConfirmField creates a huh.Confirm field for a yes/no question.
func buildConfirmField(q *Question, result *WizardResult) *huh.Confirm {
	value, _ := strconv.ParseBool(q.Default)

	qID := q.ID
	return huh.NewConfirm().
		Title(q.Title).
		Description(q.Description).
		Affirmative("Yes").
		Negative("No").
		Value(&value).
		Validate(func(v bool) error {
			saveAnswer(qID, strconv.FormatBool(v), result)
			return nil
		})
}

// saveAnswer stores an answer in the result. It is idempotent because huh
// may run validation more than once per field.
func saveAnswer(id, value string, result *WizardResult) {
	switch id {
	case idModelName:
		result.Name = value
	case idProjectName:
		result.ProjectName = value
	case idFolderName:
		result.FolderName = value
	case idKeepDefaultFields:
		if value == "false" {
			result.Fields = nil
		}
	case idAddField:
		result.AddAnother = value == "true"
	case idFieldName:
		result.Draft.Name = value
	case idFieldType:
		result.Draft.Type = models.FieldType(value)
	case idFieldOptions:
		result.Draft.Options = models.SplitOptions(value)
	case idFieldValidation:
		result.Draft.Validation = value
	case idFieldDefault:
		result.Draft.DefaultValue = value
	}
}

// newWizardTheme creates a huh.Theme in the ui palette.
func newWizardTheme(noColor bool) *huh.Theme {
	t := huh.ThemeBase()
	if noColor {
		return t
	}

	p := ui.NewTheme(false).Colors
	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: p.Primary}
	secondary := lipgloss.AdaptiveColor{Light: "#3B6FD4", Dark: p.Secondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: p.Success}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: p.Error}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: p.Muted}

	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}
