package sql

import (
	"runtime"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// Options configures Parse, ParseScript and ParseBatch.
type Options struct {
	// Limits bound each parse. Zero fields use parser defaults.
	Limits parser.Limits
	// Concurrency caps the parses ParseBatch runs at once.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int
}

// Option mutates Options.
type Option func(*Options)

// WithLimits sets the resource limits of each parse.
func WithLimits(l parser.Limits) Option {
	return func(o *Options) { o.Limits = l }
}

// WithConcurrency sets the number of parses ParseBatch runs at once.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

func (o Options) parserOptions() []parser.Option {
	return []parser.Option{parser.WithLimits(o.Limits)}
}
