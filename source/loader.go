// Package source loads delimited-text datasets from remote URLs or
// local files into tables. All network I/O in the module lives behind
// this package, so everything downstream is deterministic given a
// fixed input table.
package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/econdex-org/econdex/table"
)

// DefaultTimeout matches the bounded fetch timeout the upstream
// datasets are served with. One attempt, no retry, no backoff.
const DefaultTimeout = 120 * time.Second

// Source describes one dataset: where it lives and how to read it.
type Source struct {
	Name     string   `yaml:"-"`
	URL      string   `yaml:"url,omitempty"`       // remote location (HTTP GET)
	Path     string   `yaml:"path,omitempty"`      // local file, used when URL is empty
	SkipRows int      `yaml:"skip_rows,omitempty"` // rows before the header (World Bank exports use 4)
	Expect   []string `yaml:"expect,omitempty"`    // columns that must be present after parsing
}

// Loader fetches and parses sources. Safe to reuse across datasets;
// holds the single HTTP client with its bounded timeout.
type Loader struct {
	client *http.Client
	logger *zap.Logger
}

// NewLoader creates a loader.
//
// Options:
//   - WithTimeout(d) — fetch timeout (default 120s)
//   - WithHTTPClient(c) — custom client
//   - WithLogger(l) — structured progress logging
func NewLoader(opts ...Option) *Loader {
	cfg := applyOptions(opts)
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Loader{client: client, logger: cfg.Logger}
}

// Load fetches a source and parses it into a table. Remote sources
// are fetched with one bounded-timeout GET; local sources are read
// from disk. Returns *FetchError or *ParseError.
func (l *Loader) Load(src Source) (*table.Table, error) {
	data, err := l.fetch(src)
	if err != nil {
		return nil, err
	}

	t, err := Parse(src.Name, data, src.SkipRows)
	if err != nil {
		return nil, err
	}

	if err := requireColumns(t, src.Expect); err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		zap.String("source", src.Name),
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Columns())))
	return t, nil
}

func (l *Loader) fetch(src Source) ([]byte, error) {
	if src.URL != "" {
		l.logger.Info("downloading dataset",
			zap.String("source", src.Name),
			zap.String("url", src.URL))

		resp, err := l.client.Get(src.URL)
		if err != nil {
			return nil, &FetchError{Source: src.Name, Location: src.URL, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &FetchError{Source: src.Name, Location: src.URL, StatusCode: resp.StatusCode}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &FetchError{Source: src.Name, Location: src.URL, Err: err}
		}
		return data, nil
	}

	if src.Path == "" {
		return nil, &FetchError{Source: src.Name, Location: "",
			Err: fmt.Errorf("source has neither URL nor path")}
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, &FetchError{Source: src.Name, Location: src.Path, Err: err}
	}
	return data, nil
}

// requireColumns verifies the parsed table carries every expected column.
func requireColumns(t *table.Table, expect []string) error {
	for _, c := range expect {
		if !t.HasColumn(c) {
			return &ParseError{
				Source: t.Name(),
				Reason: fmt.Sprintf("missing expected column %q", c),
			}
		}
	}
	return nil
}
