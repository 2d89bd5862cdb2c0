// Package econdex provides a tabular join & estimation pipeline for
// public economic datasets.
//
// Usage:
//
//	import (
//	    "github.com/econdex-org/econdex/pipeline"
//	    "github.com/econdex-org/econdex/source"
//	)
//
//	cfg := source.DefaultConfig()
//	p := pipeline.New(cfg, pipeline.WithLogger(logger))
//	result, err := p.AIUsers()
//
// The pipeline fetches delimited-text datasets (AI usage index,
// internet-access survey, labor-force panels), joins them on
// country/year keys with explicit inner/outer semantics, estimates
// ChatGPT usage from a GDP reference curve, and derives per-capita
// metrics. All transforms are pure functions over immutable tables;
// network I/O is isolated in the source package.
package econdex
