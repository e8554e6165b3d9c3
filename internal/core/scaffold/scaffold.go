// Package scaffold runs one content fragment model request end to end:
// validate, generate, then persist through a template.Deployer.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/modu-ai/cfbuilder/internal/template"
	"github.com/modu-ai/cfbuilder/internal/validate"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// Session is one create request and where its output goes.
type Session struct {
	Request     models.Request
	Destination string // Directory the model folder is created under.
	DryRun      bool   // If true, generate but write nothing.
	Reporter    Reporter
}

// Reporter receives one call per written document.
type Reporter interface {
	Step(done, total int, absPath string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(done, total int, absPath string)

// Step calls f.
func (f ReporterFunc) Step(done, total int, absPath string) {
	f(done, total, absPath)
}

// Result summarizes a scaffolding run.
type Result struct {
	Model     models.ModelDefinition
	Documents template.DocumentSet
	Root      string   // Absolute destination; empty for a Plan.
	ModelDir  string   // Directory of the model descriptor below Destination.
	Written   []string // Absolute paths written; empty on a dry run.
	DryRun    bool
}

// Targets returns the absolute path of every document below Root, in write order.
func (r *Result) Targets() []string {
	paths := make([]string, len(r.Documents))
	for i, doc := range r.Documents {
		paths[i] = filepath.Join(r.Root, filepath.FromSlash(doc.Path))
	}
	return paths
}

// Scaffolder turns requests into descriptor files.
type Scaffolder interface {
	// Plan validates req and renders its documents without touching disk.
	Plan(req models.Request) (*Result, error)

	// Run plans the session's request and persists it unless DryRun is set.
	Run(ctx context.Context, sess Session) (*Result, error)
}

// scaffolder is the concrete implementation of Scaffolder.
type scaffolder struct {
	generator   *template.Generator
	newDeployer func(opts ...template.DeployOption) template.Deployer
	logger      *slog.Logger
}

// NewScaffolder creates a Scaffolder rendering through generator.
func NewScaffolder(generator *template.Generator, logger *slog.Logger) Scaffolder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &scaffolder{
		generator:   generator,
		newDeployer: template.NewDeployer,
		logger:      logger,
	}
}

// Plan validates req and renders its documents.
// A rule failure is returned as a *validate.Failure.
func (s *scaffolder) Plan(req models.Request) (*Result, error) {
	if err := validate.Request(req).Err(); err != nil {
		s.logger.Debug("request rejected", "model", req.Name, "reason", err)
		return nil, err
	}

	def := req.Definition()
	docs, err := s.generator.Generate(def)
	if err != nil {
		return nil, err
	}

	return &Result{
		Model:     def,
		Documents: docs,
		ModelDir:  path.Dir(docs[len(docs)-1].Path),
	}, nil
}

// @MX:ANCHOR: [AUTO] Run is the single write path for generated descriptors
// @MX:REASON: [AUTO] used by the create command in both wizard and flag modes
// Run executes the session. On a persistence failure Written holds the files
// already written so they can be cleaned up.
func (s *scaffolder) Run(ctx context.Context, sess Session) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.Plan(sess.Request)
	if err != nil {
		return nil, err
	}
	res.DryRun = sess.DryRun

	dest, err := filepath.Abs(sess.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}
	res.Root = dest
	res.ModelDir = filepath.Join(dest, filepath.FromSlash(res.ModelDir))

	s.logger.Info("scaffolding content fragment model",
		"model", res.Model.Name,
		"project", res.Model.ProjectName,
		"folder", res.Model.FolderName,
		"destination", dest,
		"dryRun", sess.DryRun,
	)

	if sess.DryRun {
		return res, nil
	}

	var opts []template.DeployOption
	if sess.Reporter != nil {
		opts = append(opts, template.WithOnWrite(sess.Reporter.Step))
	}
	written, err := s.newDeployer(opts...).Deploy(ctx, dest, res.Documents)
	res.Written = written
	if err != nil {
		s.logger.Warn("persist failed", "written", len(written), "error", err)
		return res, fmt.Errorf("persist model %q: %w", res.Model.Name, err)
	}

	s.logger.Info("content fragment model created", "dir", res.ModelDir, "files", len(written))
	return res, nil
}
