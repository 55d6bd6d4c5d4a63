package cli

import (
	"fmt"

	"github.com/toyz/entitydoc/internal/errors"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the configuration for the entitydoc command
type Config struct {
	// Directories is the list of directories to scan for Go files.
	// A trailing "/..." scans recursively.
	Directories []string

	// Classes restricts output to these class ids or bare type names.
	// When empty every struct carrying at least one annotation is resolved.
	Classes []string

	// Format is the output encoding, json or yaml
	Format string

	// ModuleName overrides the module path used to qualify class ids.
	// If empty, it is read from the nearest go.mod file.
	ModuleName string

	// Types replaces the accepted @var types when non-empty
	Types []string

	// Verbose enables detailed logging
	Verbose bool

	// Quiet only reports errors
	Quiet bool
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if len(c.Directories) == 0 {
		return errors.ConfigurationError("directories", "at least one directory path is required")
	}
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return errors.ConfigurationError("format", fmt.Sprintf("unsupported output format %q", c.Format)).
			WithSuggestion("Use --format json or --format yaml")
	}
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbosity", "--verbose and --quiet are mutually exclusive")
	}
	return nil
}
