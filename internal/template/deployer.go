package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// @MX:ANCHOR: [AUTO] Deployer is the persistence contract for generated descriptor sets
// @MX:REASON: [AUTO] the scaffolder and the create command write through it
// Deployer writes a DocumentSet under a destination root.
type Deployer interface {
	// Deploy writes every document of docs below destRoot, creating parent
	// directories and overwriting existing files. It returns the absolute
	// paths written, in order, including those written before a failure.
	Deploy(ctx context.Context, destRoot string, docs DocumentSet) ([]string, error)
}

// DeployOption configures a Deployer.
type DeployOption func(*deployer)

// WithOnWrite registers a callback invoked after each file is written.
// done counts written files, total is the size of the set.
func WithOnWrite(fn func(done, total int, absPath string)) DeployOption {
	return func(d *deployer) {
		d.onWrite = fn
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(perm os.FileMode) DeployOption {
	return func(d *deployer) {
		if perm != 0 {
			d.perm = perm
		}
	}
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	perm    os.FileMode
	onWrite func(done, total int, absPath string)
}

// NewDeployer creates a Deployer writing to the local file system.
func NewDeployer(opts ...DeployOption) Deployer {
	d := &deployer{perm: 0o644}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// @MX:NOTE: [AUTO] Each file is written atomically; the set as a whole is not.
// Deploy writes docs in order. The first failure stops the run and is
// returned as a *Fault naming the document path.
func (d *deployer) Deploy(ctx context.Context, destRoot string, docs DocumentSet) ([]string, error) {
	destRoot = filepath.Clean(destRoot)

	// Validate every path before writing anything.
	for _, doc := range docs {
		if err := validateDeployPath(destRoot, doc.Path); err != nil {
			return nil, &Fault{Kind: ErrPathTraversal, Op: "deploy", Path: doc.Path, Err: err}
		}
	}

	written := make([]string, 0, len(docs))
	for i, doc := range docs {
		// Check context cancellation before each file
		select {
		case <-ctx.Done():
			return written, &Fault{Kind: ErrPersist, Op: "deploy", Path: doc.Path, Err: fmt.Errorf("%w: %w", ErrPersist, ctx.Err())}
		default:
		}

		destPath := filepath.Join(destRoot, filepath.FromSlash(doc.Path))

		destDir := filepath.Dir(destPath)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return written, &Fault{Kind: ErrPersist, Op: "mkdir", Path: doc.Path, Err: fmt.Errorf("%w: %w", ErrPersist, err)}
		}

		if err := atomicWrite(destPath, doc.Body, d.perm); err != nil {
			return written, &Fault{Kind: ErrPersist, Op: "write", Path: doc.Path, Err: fmt.Errorf("%w: %w", ErrPersist, err)}
		}

		written = append(written, destPath)
		if d.onWrite != nil {
			d.onWrite(i+1, len(docs), destPath)
		}
	}

	return written, nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it over path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cfbuilder-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}

// validateDeployPath ensures a document path does not escape destRoot.
func validateDeployPath(destRoot, relPath string) error {
	// Clean and normalize
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	// Reject absolute paths
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	// Reject path traversal components
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(destRoot)
	if err != nil {
		return fmt.Errorf("resolve destination root: %w", err)
	}

	// Verify containment: the resolved path must be under destRoot
	absPath := filepath.Join(absRoot, cleaned)
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes destination root", ErrPathTraversal, relPath)
	}

	return nil
}
