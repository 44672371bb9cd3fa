// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridview/internal/testutil"
	"github.com/leapstack-labs/gridview/internal/ui/dataset"
	"github.com/leapstack-labs/gridview/internal/ui/notifier"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *dataset.Store
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Columns      []grid.ColumnDef
}

// SetupTestFixture creates a store loaded with the given rows of display
// cells over the default columns.
func SetupTestFixture(t *testing.T, cells ...[]string) *TestFixture {
	t.Helper()

	columns := grid.DefaultColumns()
	n := notifier.New()
	store := dataset.NewStore(func(context.Context) (*grid.Dataset, error) {
		return grid.NewDatasetFromCells(columns, cells), nil
	}, columns, n, testutil.NewTestLogger(t))
	require.NoError(t, store.Reload(context.Background()))

	return &TestFixture{
		Store:        store,
		Notifier:     n,
		SessionStore: NewTestSessionStore(),
		Columns:      columns,
	}
}

// SampleRows returns n rows alternating between two countries, with one
// date per month of 2023.
func SampleRows(n int) [][]string {
	countries := []string{"US", "UK"}
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("Project %02d", i),
			countries[i%2],
			fmt.Sprintf("$%d", 10+i),
			fmt.Sprintf("2023-%02d-01", 1+i%12),
		}
	}
	return rows
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	// The timeout releases the context.
	_ = cancel
	return r.WithContext(ctx)
}

// WithCookies copies the cookies set by a previous response onto r.
func WithCookies(r *http.Request, res *http.Response) *http.Request {
	for _, c := range res.Cookies() {
		r.AddCookie(c)
	}
	return r
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
