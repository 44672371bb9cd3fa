package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/leapstack-labs/gridview/pkg/grid"
)

func init() {
	Register("json", newJSONFile)
	Register("http", newHTTP)
}

// decodeRecords reads a JSON array of objects. Numbers are kept as
// json.Number so prices keep their exact text.
func decodeRecords(r io.Reader) ([]grid.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []grid.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return records, nil
}

// JSONFile reads a dataset from a local JSON file.
type JSONFile struct {
	Path   string
	Logger *slog.Logger
}

func newJSONFile(cfg Config, logger *slog.Logger) (Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("json source requires source.path")
	}
	return &JSONFile{Path: cfg.Path, Logger: logger}, nil
}

// Load implements Source.
func (s *JSONFile) Load(_ context.Context, _ []string) ([]grid.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := decodeRecords(f)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("dataset loaded", "path", s.Path, "records", len(records))
	return records, nil
}

// Close implements Source.
func (s *JSONFile) Close() error { return nil }

// HTTP fetches a dataset from a URL.
type HTTP struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func newHTTP(cfg Config, logger *slog.Logger) (Source, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("http source requires source.url")
	}
	return &HTTP{URL: cfg.URL, Client: http.DefaultClient, Logger: logger}, nil
}

// Load implements Source. Any status other than 200 is a FetchStatusError.
func (s *HTTP) Load(ctx context.Context, _ []string) ([]grid.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchStatusError{URL: s.URL, StatusCode: resp.StatusCode}
	}
	records, err := decodeRecords(resp.Body)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("dataset fetched", "url", s.URL, "records", len(records))
	return records, nil
}

// Close implements Source.
func (s *HTTP) Close() error { return nil }

// FetchStatusError reports a non-200 dataset response.
type FetchStatusError struct {
	URL        string
	StatusCode int
}

func (e *FetchStatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}
