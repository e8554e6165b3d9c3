// Package wizard provides the interactive huh-based form that collects a
// content fragment model definition field by field.
package wizard

import (
	"errors"
	"slices"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

// WizardResult holds the answers collected so far.
type WizardResult struct {
	// Model settings
	Name        string // Model name (required)
	ProjectName string // AEM project under /conf
	FolderName  string // Root folder written to disk

	// Fields accepted so far, in form order.
	Fields []models.FieldSpec

	// Draft is the field currently being described. It is appended to
	// Fields once all field questions have been answered.
	Draft models.FieldSpec

	// AddAnother records the answer to the "add a field" confirmation.
	AddAnother bool
}

// Request converts the answers into the request shape accepted by the
// validator and the generator.
func (r *WizardResult) Request() models.Request {
	return models.Request{
		Name:        r.Name,
		ProjectName: r.ProjectName,
		FolderName:  r.FolderName,
		Fields:      slices.Clone(r.Fields),
	}
}

// commitDraft appends the draft to Fields and resets it.
func (r *WizardResult) commitDraft() {
	r.Fields = append(r.Fields, r.Draft)
	r.Draft = models.FieldSpec{}
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question.
	QuestionTypeConfirm
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select, Input or Confirm
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Options for select questions
	Default     string                   // Default value; "true"/"false" for confirms
	Required    bool                     // Whether the field is required
	Validate    func(string) error       // Optional rule run before the answer is stored
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Config supplies the option lists and defaults the form starts with.
type Config struct {
	FieldTypes      []models.Choice
	ValidationTypes []models.Choice
	DefaultFields   []models.FieldSpec
	DefaultProject  string
	DefaultFolder   string
	NoColor         bool
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
