package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/cfbuilder/pkg/models"
)

const (
	// maxRequestSize caps request files read from disk.
	maxRequestSize = 1 << 20 // 1MB
)

// loadRequestFile reads a request from a JSON or YAML file. The format is
// chosen by extension; anything other than .json is parsed as YAML.
func loadRequestFile(path string) (models.Request, error) {
	var req models.Request

	info, err := os.Stat(path)
	if err != nil {
		return req, fmt.Errorf("read request file: %w", err)
	}
	if info.Size() > maxRequestSize {
		return req, fmt.Errorf("request file %s exceeds %d bytes", path, maxRequestSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read request file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return req, nil
}

// parseFieldFlag parses a --field value of the form name:type[:required].
func parseFieldFlag(raw string) (models.FieldSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.FieldSpec{}, fmt.Errorf("invalid --field %q: want name:type[:required]", raw)
	}

	spec := models.FieldSpec{
		Name: strings.TrimSpace(parts[0]),
		Type: models.FieldType(strings.TrimSpace(parts[1])),
	}
	if len(parts) == 3 {
		switch strings.ToLower(strings.TrimSpace(parts[2])) {
		case models.ValidationRequired:
			spec.Required = true
		case models.ValidationOptional, "":
		default:
			return models.FieldSpec{}, fmt.Errorf("invalid --field %q: third part must be required or optional", raw)
		}
	}
	return spec, nil
}

// requestFromFlags builds a request from --file, then overlays --name,
// --project, --folder and appends every --field.
func requestFromFlags(cmd *cobra.Command) (models.Request, error) {
	var req models.Request

	if file := getStringFlag(cmd, "file"); file != "" {
		loaded, err := loadRequestFile(file)
		if err != nil {
			return req, err
		}
		req = loaded
	}

	if v := getStringFlag(cmd, "name"); v != "" {
		req.Name = v
	}
	if v := getStringFlag(cmd, "project"); v != "" {
		req.ProjectName = v
	}
	if v := getStringFlag(cmd, "folder"); v != "" {
		req.FolderName = v
	}

	raw, err := cmd.Flags().GetStringArray("field")
	if err != nil {
		return req, nil
	}
	for _, f := range raw {
		spec, err := parseFieldFlag(f)
		if err != nil {
			return req, err
		}
		req.Fields = append(req.Fields, spec)
	}
	return req, nil
}

// addRequestFlags registers the flags read by requestFromFlags.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Request file (JSON or YAML)")
	cmd.Flags().String("name", "", "Model name")
	cmd.Flags().String("project", "", "Project name (default from config)")
	cmd.Flags().String("folder", "", "CF folder name (default from config)")
	cmd.Flags().StringArray("field", nil, "Field as name:type[:required] (repeatable)")
}

// withConfigDefaults fills a blank project and folder from the builder section.
func withConfigDefaults(req models.Request) models.Request {
	if deps == nil || deps.Config == nil || deps.Config.Get() == nil {
		return req
	}
	b := deps.Config.Get().Builder
	return req.WithDefaults(b.DefaultProject, b.DefaultFolder)
}
