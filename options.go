package srplsh

import (
	"fmt"

	"github.com/hupe1980/srplsh/bucket"
	"github.com/hupe1980/srplsh/lsh"
)

// DefaultCandidateMultiplier is the default ratio between the candidate
// threshold and k.
const DefaultCandidateMultiplier = 2

type options struct {
	index               lsh.Config
	candidateMultiplier int
	logger              *Logger
	metricsCollector    MetricsCollector
}

func defaultOptions() options {
	return options{
		index:               lsh.DefaultConfig(),
		candidateMultiplier: DefaultCandidateMultiplier,
		logger:              NoopLogger(),
		metricsCollector:    NoopMetricsCollector{},
	}
}

func (o options) validate() error {
	if o.candidateMultiplier < 0 {
		return fmt.Errorf("%w: candidate multiplier must not be negative, got %d", ErrInvalidConfig, o.candidateMultiplier)
	}
	return o.index.Validate()
}

// Option configures a Retriever.
type Option func(*options)

// WithNumBands sets the number of independent hash bands.
// More bands raise recall at the cost of build time and memory.
func WithNumBands(n int) Option {
	return func(o *options) {
		o.index.NumBands = n
	}
}

// WithNumBits sets the signature width per band (1..64).
// Wider signatures make buckets smaller and more selective.
func WithNumBits(n int) Option {
	return func(o *options) {
		o.index.NumBits = n
	}
}

// WithSeedBase sets the seed of band 0; band b uses seed+b.
func WithSeedBase(seed uint64) Option {
	return func(o *options) {
		o.index.SeedBase = seed
	}
}

// WithBucketStrategy selects the hash table implementation used per band.
func WithBucketStrategy(s bucket.Strategy) Option {
	return func(o *options) {
		o.index.Strategy = s
	}
}

// WithBuildWorkers bounds how many bands are built concurrently.
// The built index is identical for every value.
func WithBuildWorkers(n int) Option {
	return func(o *options) {
		o.index.BuildWorkers = n
	}
}

// WithIndexConfig replaces the whole index configuration.
func WithIndexConfig(cfg lsh.Config) Option {
	return func(o *options) {
		o.index = cfg
	}
}

// WithCandidateMultiplier sets the candidate threshold to m*k.
//
// Neighbour probing stops once m*k candidates are collected, and a query
// that collects fewer is answered by a full scan. With m == 0 every
// neighbour bucket is probed and only an empty candidate set falls back.
func WithCandidateMultiplier(m int) Option {
	return func(o *options) {
		o.candidateMultiplier = m
	}
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
