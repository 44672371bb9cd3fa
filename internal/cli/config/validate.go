package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// validOutputs lists the accepted values of the output key.
var validOutputs = []string{"auto", "text", "markdown", "json", "csv", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !source.IsRegistered(c.Source.Type) {
		return &source.UnknownSourceError{Type: c.Source.Type, Available: source.List()}
	}

	switch c.DateBlanks {
	case "", DateBlanksAuto, DateBlanksAlways:
	default:
		return fmt.Errorf("date_blanks must be %q or %q, got %q", DateBlanksAuto, DateBlanksAlways, c.DateBlanks)
	}

	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}

	if c.OutputFormat != "" && !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(validOutputs, ", "), c.OutputFormat)
	}

	if c.UI != nil && (c.UI.Port < 0 || c.UI.Port > 65535) {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}

	seen := make(map[string]bool, len(c.Columns))
	for i, col := range c.Columns {
		if col.Field == "" {
			return fmt.Errorf("columns[%d]: field is required", i)
		}
		if seen[col.Field] {
			return fmt.Errorf("columns[%d]: duplicate field %q", i, col.Field)
		}
		seen[col.Field] = true
		switch col.Kind {
		case "", grid.KindCategorical, grid.KindDate:
		default:
			return fmt.Errorf("columns[%d]: unknown kind %q", i, col.Kind)
		}
	}
	return nil
}

// ValidateDataPath checks that a file-backed source points at an existing file.
func (c *Config) ValidateDataPath() error {
	switch c.Source.Type {
	case "json", "sqlite", "duckdb":
	default:
		return nil
	}
	if _, err := os.Stat(c.Source.Path); os.IsNotExist(err) {
		return fmt.Errorf("dataset does not exist: %s\nHint: Use --data to specify a different path", c.Source.Path)
	}
	return nil
}
