//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the brace module embedded at build time.
// It is printed by the CLI when users invoke the version subcommand.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding space.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "brace"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Block-structured language interpreter"
	// Extension is the conventional file extension of brace source files.
	Extension = ".brc"
)
