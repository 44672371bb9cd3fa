package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridview/internal/source"
	"github.com/leapstack-labs/gridview/internal/testutil"
	"github.com/leapstack-labs/gridview/pkg/grid"
)

const sampleJSON = `[
	{"Project_Name": "Apollo", "Country": "US", "Price": 10, "Date": "2023-01-05"},
	{"Project_Name": "Borealis", "Country": "UK", "Price": 12.5, "Date": "2023-02-11"},
	{"Project_Name": "Cygnus", "Country": "", "Price": null, "Date": ""}
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "placeholderData.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T, path string) Config {
	return Config{
		Source:        source.Config{Type: "json", Path: path},
		Columns:       grid.DefaultColumns(),
		Host:          "127.0.0.1",
		Port:          0,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        testutil.NewTestLogger(t),
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(testConfig(t, writeDataset(t, sampleJSON)))
	require.NoError(t, s.Store().Reload(context.Background()))

	handler, err := s.Handler()
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
	}{
		{"table page", "/", http.StatusOK, []string{"<title>Projects - gridview</title>", "Apollo", "$12.5", "(Blanks)", "3 of 3 rows"}},
		{"health", "/healthz", http.StatusOK, []string{"OK"}},
		{"stylesheet", "/static/gridview.css", http.StatusOK, []string{".grid-table"}},
		{"unknown route", "/nope", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, ts.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestServer_HealthBeforeLoad(t *testing.T) {
	s := NewServer(testConfig(t, writeDataset(t, sampleJSON)))
	handler, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Serve(t *testing.T) {
	path := writeDataset(t, sampleJSON)
	cfg := testConfig(t, path)
	cfg.Watch = true
	s := NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, func(addr string) { ready <- addr }) }()

	var url string
	select {
	case url = <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	status, body := get(t, url+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Borealis")

	// Rewriting the file publishes a new dataset version.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"Project_Name": "Draco", "Country": "FR", "Price": 1, "Date": "2024-03-01"}]`), 0o600))
	require.Eventually(t, func() bool {
		snap, _ := s.Store().Current()
		return snap.Version >= 2 && len(snap.Dataset.Rows) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ServeFailedLoad(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.json"))
	s := NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, func(addr string) { ready <- addr }) }()
	url := <-ready

	require.Eventually(t, func() bool {
		_, ok := s.Store().Current()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	status, body := get(t, url+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No rows")

	cancel()
	assert.NoError(t, <-done)
}
