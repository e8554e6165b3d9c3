// Package validate implements the naming-convention rules applied to content
// fragment models before generation. Rules are pure functions evaluated in
// order; the first failure wins.
package validate

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every Failure so callers can use errors.Is.
var ErrValidation = errors.New("validate: validation failed")

// Failure is a user-correctable validation failure.
type Failure struct {
	Field  string // Offending field or model attribute, empty when not applicable.
	Reason string // Human-readable message shown to the user as-is.
}

// Error implements the error interface. It returns the reason verbatim.
func (f *Failure) Error() string {
	return f.Reason
}

// Unwrap returns ErrValidation.
func (f *Failure) Unwrap() error {
	return ErrValidation
}

// Result is the outcome of a validation run.
// The zero value is Valid.
type Result struct {
	Field  string
	Reason string
}

// Valid is the accepting Result.
var Valid = Result{}

// IsValid reports whether no rule failed.
func (r Result) IsValid() bool {
	return r.Reason == ""
}

// Err returns nil for a valid result, otherwise a *Failure.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return &Failure{Field: r.Field, Reason: r.Reason}
}

// String implements fmt.Stringer.
func (r Result) String() string {
	if r.IsValid() {
		return "Valid"
	}
	return fmt.Sprintf("Invalid(%q)", r.Reason)
}
