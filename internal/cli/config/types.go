// Package config provides configuration management for the gridview CLI.
//
// Configuration is layered with koanf: built-in defaults, then
// gridview.yaml, then GRIDVIEW_ environment variables, then command-line
// flags. Later layers override earlier ones.
package config

import (
	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// SourceConfig is an alias for the dataset source configuration.
// This allows CLI code to use config.SourceConfig without importing internal/source.
type SourceConfig = source.Config

// UIConfig holds configuration for the browser host.
type UIConfig struct {
	Host          string `koanf:"host"`
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Host:     DefaultHost,
		Port:     DefaultPort,
		AutoOpen: true,
		Watch:    true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Host == "" {
		ui.Host = DefaultHost
	}
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	Source       SourceConfig     `koanf:"source"`
	Columns      []grid.ColumnDef `koanf:"columns"`
	DateBlanks   string           `koanf:"date_blanks"`
	LogLevel     string           `koanf:"log_level"`
	Verbose      bool             `koanf:"verbose"`
	OutputFormat string           `koanf:"output"`
	UI           *UIConfig        `koanf:"ui"`

	// ProjectRoot is the directory relative paths are resolved against.
	// It is not read from the config file.
	ProjectRoot string `koanf:"-"`
}

// GridOptions returns the widget options the config selects.
func (c *Config) GridOptions() grid.Options {
	return grid.Options{AlwaysShowDateBlanks: c.DateBlanks == DateBlanksAlways}
}

// Fields returns the record keys of the configured columns, in column order.
func (c *Config) Fields() []string {
	fields := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		fields[i] = col.Field
	}
	return fields
}

// Default configuration values.
const (
	DefaultSourceType = "json"
	DefaultDataPath   = "data/placeholderData.json"
	DefaultLogLevel   = "info"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultHost       = "localhost"
	DefaultPort       = 8765

	// DateBlanksAuto shows the (Blanks) option of a date column only while
	// a blank date row is still visible. DateBlanksAlways keeps it listed.
	DateBlanksAuto   = "auto"
	DateBlanksAlways = "always"
)
