package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/internal/testutil"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellsDataset(cells ...[]string) *grid.Dataset {
	return grid.NewDatasetFromCells(grid.DefaultColumns(), cells)
}

func TestStore_Reload(t *testing.T) {
	n := notifier.New()
	events, unsubscribe := n.Subscribe()
	defer unsubscribe()

	calls := 0
	store := NewStore(func(context.Context) (*grid.Dataset, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("network down")
		}
		return cellsDataset([]string{"A", "US", "$1", "2023-01-01"}), nil
	}, grid.DefaultColumns(), n, testutil.NewTestLogger(t))

	_, ok := store.Current()
	assert.False(t, ok)

	require.NoError(t, store.Reload(context.Background()))
	snap, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Dataset.Rows, 1)
	assert.Equal(t, notifier.Event{Version: 1, Rows: 1}, <-events)

	// A failed reload keeps the previous dataset.
	assert.EqualError(t, store.Reload(context.Background()), "network down")
	snap, _ = store.Current()
	assert.Equal(t, 1, snap.Version)
	assert.Len(t, snap.Dataset.Rows, 1)
}

func TestStore_FirstLoadFailure(t *testing.T) {
	store := NewStore(func(context.Context) (*grid.Dataset, error) {
		return nil, &source.FetchStatusError{URL: "http://x/data.json", StatusCode: 500}
	}, grid.DefaultColumns(), nil, testutil.NewTestLogger(t))

	err := store.Reload(context.Background())
	var statusErr *source.FetchStatusError
	require.ErrorAs(t, err, &statusErr)

	snap, ok := store.Current()
	require.True(t, ok, "an empty dataset is published")
	assert.Empty(t, snap.Dataset.Rows)
	assert.Len(t, snap.Dataset.Columns, 4)
}

func TestStore_Wait(t *testing.T) {
	store := NewStore(nil, nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := store.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		time.Sleep(20 * time.Millisecond)
		store.Set(cellsDataset())
	}()
	snap, err := store.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
}

func TestStore_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placeholderData.json")
	write := func(content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write(`[{"Project_Name": "A", "Country": "US", "Price": 1, "Date": "2023-01-01"}]`)

	cfg := source.Config{Type: "json", Path: path}
	store := NewStore(SourceLoader(cfg, grid.DefaultColumns(), nil), grid.DefaultColumns(), nil, testutil.NewTestLogger(t))
	require.NoError(t, store.Reload(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, path, 10*time.Millisecond) }()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	write(`[
		{"Project_Name": "A", "Country": "US", "Price": 1, "Date": "2023-01-01"},
		{"Project_Name": "B", "Country": "UK", "Price": 2, "Date": "2023-02-01"}
	]`)

	require.Eventually(t, func() bool {
		snap, _ := store.Current()
		return len(snap.Dataset.Rows) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
