// Package template renders the content fragment model descriptor documents
// and persists them under a destination root.
package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates the named template is not in the file system.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates template execution referenced missing data.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrGenerationFault is matched by every *Fault. A fault means an upstream
	// invariant was violated or persistence failed; it is never user-correctable.
	ErrGenerationFault = errors.New("template: generation fault")

	// ErrMalformedModel indicates a model reached the generator without a name or folder.
	ErrMalformedModel = errors.New("template: malformed model definition")

	// ErrMalformedField indicates a field reached the generator in a state validation forbids.
	ErrMalformedField = errors.New("template: malformed field definition")

	// ErrMalformedDocument indicates a rendered document is not well-formed XML.
	ErrMalformedDocument = errors.New("template: malformed document")

	// ErrPathTraversal indicates a document path escapes the destination root.
	ErrPathTraversal = errors.New("template: path escapes destination root")

	// ErrPersist indicates a document could not be written.
	ErrPersist = errors.New("template: persist failed")
)

// Fault is a GenerationFault: fatal for the current request.
// Path is the document's relative path when one applies, so partially
// written sets can be cleaned up by hand.
type Fault struct {
	Kind error  // One of the sentinel errors above; Err wraps it too.
	Op   string // Operation that failed, e.g. "render", "write".
	Path string
	Err  error // Underlying cause.
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Path != "" {
		return fmt.Sprintf("%s %q: %v", f.Op, f.Path, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// Is matches ErrGenerationFault and the fault's Kind.
func (f *Fault) Is(target error) bool {
	return target == ErrGenerationFault || (f.Kind != nil && target == f.Kind)
}
