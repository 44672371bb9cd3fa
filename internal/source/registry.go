// Package source loads widget datasets from files, URLs and databases.
//
// Every source returns the raw records; formatting into display rows and
// all filtering happen in memory in pkg/grid.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/leapstack-labs/gridview/pkg/grid"
)

// Config selects and configures a dataset source.
type Config struct {
	// Type is the registered source name: json, http, sqlite, duckdb or postgres.
	Type string `koanf:"type"`
	// Path is the file path for json, sqlite and duckdb sources.
	Path string `koanf:"path"`
	// URL is fetched by the http source.
	URL string `koanf:"url"`
	// DSN is the postgres connection string.
	DSN string `koanf:"dsn"`
	// Table is read by the database sources.
	Table string `koanf:"table"`
	// Timeout bounds a single load. Zero means no limit beyond the caller's context.
	Timeout time.Duration `koanf:"timeout"`
}

// Location returns the path, URL or DSN the config points at.
func (c Config) Location() string {
	switch {
	case c.URL != "":
		return c.URL
	case c.DSN != "":
		return c.DSN
	default:
		return c.Path
	}
}

// Source loads the records of one dataset.
type Source interface {
	// Load reads every record. fields lists the record keys the widget uses;
	// database sources select exactly those columns.
	Load(ctx context.Context, fields []string) ([]grid.Record, error)

	// Close releases any connection held by the source.
	Close() error
}

// Factory builds a source from its config.
type Factory func(cfg Config, logger *slog.Logger) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a source factory under a name.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a source factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// IsRegistered checks if a source type is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// List returns all registered source names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a source for cfg. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) (Source, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("source type not specified")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownSourceError{Type: cfg.Type, Available: List()}
	}
	return factory(cfg, logger.With("source", cfg.Type))
}

// Load opens the configured source, reads it once and closes it.
func Load(ctx context.Context, cfg Config, fields []string, logger *slog.Logger) ([]grid.Record, error) {
	src, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return src.Load(ctx, fields)
}

// UnknownSourceError is returned when an unknown source type is requested.
type UnknownSourceError struct {
	Type      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source type %q\nAvailable sources: %v\nHint: Check source.type in gridview.yaml", e.Type, e.Available)
}
