// Package pipeline composes the loaders, join engine, estimator and
// deriver into the two published analyses: the country-level AI-usage
// table and the labor-panel crowding-out test.
//
// The pipeline is a synchronous batch: every stage is a pure
// transform over immutable tables, and the only I/O happens in the
// source loaders at the start of a run.
package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/econdex-org/econdex/source"
	"github.com/econdex-org/econdex/table"
)

// Pipeline runs the dataset join-and-derive analyses.
type Pipeline struct {
	cfg    *source.Config
	loader *source.Loader
	logger *zap.Logger
	runID  string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a structured logger. Every log line carries the
// run id.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithLoader substitutes the dataset loader (tests inject one backed
// by httptest).
func WithLoader(loader *source.Loader) Option {
	return func(p *Pipeline) { p.loader = loader }
}

// New creates a pipeline over a source catalog.
func New(cfg *source.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: zap.NewNop(),
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("run_id", p.runID))
	if p.loader == nil {
		p.loader = source.NewLoader(
			source.WithTimeout(cfg.Timeout()),
			source.WithLogger(p.logger),
		)
	}
	return p
}

// RunID identifies this pipeline instance in logs.
func (p *Pipeline) RunID() string { return p.runID }

// load fetches one named source from the catalog.
func (p *Pipeline) load(name string) (*table.Table, error) {
	src, err := p.cfg.Get(name)
	if err != nil {
		return nil, err
	}
	return p.loader.Load(src)
}
