// Package defs holds the file and directory names shared across packages.
package defs

// Directory layout of a cfbuilder workspace.
const (
	// ConfigDir is the per-workspace configuration directory.
	ConfigDir = ".cfbuilder"

	// SectionsSubdir is the section file directory relative to ConfigDir.
	SectionsSubdir = "config/sections"

	// EnvFile is the dotenv file loaded before configuration.
	EnvFile = ".env"
)

// Section YAML file names under .cfbuilder/config/sections/.
const (
	BuilderYAML = "builder.yaml"
	SystemYAML  = "system.yaml"
)

// Repository layout of a generated model, relative to the folder node.
const (
	// ContentXML is the descriptor file name of every repository node.
	ContentXML = ".content.xml"

	// ModelsPath is the directory holding one directory per model.
	ModelsPath = "settings/dam/cfm/models"
)
