package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	"github.com/leapstack-labs/gridview/internal/ui/features"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

func snapshot(version, rows int) dataset.Snapshot {
	return dataset.Snapshot{
		Dataset: grid.NewDatasetFromCells(grid.DefaultColumns(), features.SampleRows(rows)),
		Version: version,
	}
}

func TestRegistry_Acquire(t *testing.T) {
	r := NewRegistry(grid.Options{}, nil)
	snap := snapshot(1, 30)

	a := r.Acquire("a", snap)
	require.NoError(t, a.Do(func(w *grid.Widget) error {
		return w.Apply(grid.Command{Op: grid.OpSetSearch, Text: "UK"})
	}))

	// Same version keeps state.
	assert.Same(t, a, r.Acquire("a", snap))
	assert.Equal(t, 15, a.View().VisibleCount)

	// Another session starts fresh.
	assert.Equal(t, 30, r.Acquire("b", snap).View().VisibleCount)

	// A new dataset version remounts the widget.
	assert.Equal(t, 40, r.Acquire("a", snapshot(2, 40)).View().VisibleCount)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ResetAndClose(t *testing.T) {
	r := NewRegistry(grid.Options{}, nil)
	snap := snapshot(1, 5)

	cancelled := 0
	in := r.Acquire("a", snap)
	in.Subs.Add(func() { cancelled++ })
	r.Acquire("b", snap).Subs.Add(func() { cancelled++ })

	_, ok := r.Lookup("a")
	assert.True(t, ok)

	r.Reset("a")
	_, ok = r.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cancelled)

	// Resetting an unknown session is a no-op.
	r.Reset("missing")

	r.Close()
	assert.Equal(t, 2, cancelled)
	assert.Equal(t, 0, r.Len())
}
