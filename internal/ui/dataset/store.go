// Package dataset holds the dataset served by the browser host and reloads
// it when the source changes.
package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/gridview/internal/host"
	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// LoadFunc reads a fresh dataset.
type LoadFunc func(ctx context.Context) (*grid.Dataset, error)

// SourceLoader returns a LoadFunc that reads cfg and formats the records
// into the given columns.
func SourceLoader(cfg source.Config, columns []grid.ColumnDef, logger *slog.Logger) LoadFunc {
	fields := make([]string, len(columns))
	for i, c := range columns {
		fields[i] = c.Field
	}
	return func(ctx context.Context) (*grid.Dataset, error) {
		records, err := source.Load(ctx, cfg, fields, logger)
		if err != nil {
			return nil, err
		}
		return grid.NewDataset(columns, records), nil
	}
}

// Snapshot is one loaded dataset and its version.
type Snapshot struct {
	Dataset *grid.Dataset
	Version int
}

// Store is the current dataset of a server. Readers get immutable
// snapshots; every successful Reload publishes a new version.
type Store struct {
	load     LoadFunc
	columns  []grid.ColumnDef
	notifier *notifier.Notifier
	logger   *slog.Logger

	mu      sync.RWMutex
	current Snapshot
	loaded  bool
}

// NewStore creates an empty store. columns describe the empty dataset
// published when the first load fails.
func NewStore(load LoadFunc, columns []grid.ColumnDef, notify *notifier.Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		load:     load,
		columns:  columns,
		notifier: notify,
		logger:   logger,
	}
}

// Current returns the latest snapshot. ok is false until the first load finishes.
func (s *Store) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.loaded
}

// Wait blocks until a dataset is available or ctx ends.
func (s *Store) Wait(ctx context.Context) (Snapshot, error) {
	return host.WaitFor(ctx, host.DefaultPollInterval, s.Current)
}

// Reload reads the dataset and publishes it. A failed first load publishes
// an empty dataset so hosts render an empty widget; a failed later load
// keeps the previous dataset. The error is returned either way.
func (s *Store) Reload(ctx context.Context) error {
	start := time.Now()
	ds, err := s.load(ctx)
	if err != nil {
		s.logger.Error("failed to load dataset", "error", err)
		s.mu.RLock()
		loaded := s.loaded
		s.mu.RUnlock()
		if !loaded {
			s.Set(grid.NewDataset(s.columns, nil))
		}
		return err
	}
	s.logger.Info("dataset loaded", "rows", len(ds.Rows), "duration", time.Since(start))
	s.Set(ds)
	return nil
}

// Set publishes ds as a new version and notifies subscribers.
func (s *Store) Set(ds *grid.Dataset) {
	s.mu.Lock()
	s.current = Snapshot{Dataset: ds, Version: s.current.Version + 1}
	s.loaded = true
	ev := notifier.Event{Version: s.current.Version, Rows: len(ds.Rows)}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Broadcast(ev)
	}
}
