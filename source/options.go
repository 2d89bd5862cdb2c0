package source

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ============================================================================
// LOADER OPTIONS — Functional options for NewLoader()
// ============================================================================

// Option configures loader behavior via functional options pattern.
type Option func(*config)

type config struct {
	Timeout time.Duration
	Client  *http.Client
	Logger  *zap.Logger
}

// WithTimeout sets the single bounded timeout applied to each fetch.
// There is no retry — a timed-out fetch fails the dataset.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.Timeout = d
	}
}

// WithHTTPClient supplies a custom HTTP client (tests use httptest).
// The client's own timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.Client = client
	}
}

// WithLogger attaches a structured logger for fetch/parse progress.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.Logger = logger
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Timeout: DefaultTimeout,
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
