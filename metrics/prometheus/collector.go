// Package prometheus exports retriever metrics through
// github.com/prometheus/client_golang.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/srplsh"
)

const namespace = "srplsh"

var _ srplsh.MetricsCollector = (*Collector)(nil)

// Collector implements srplsh.MetricsCollector on a private registry.
type Collector struct {
	registry *prometheus.Registry

	opLatency      *prometheus.HistogramVec
	ops            *prometheus.CounterVec
	indexedVectors prometheus.Gauge
	bands          prometheus.Gauge
	candidates     prometheus.Histogram
	fallbacks      prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of retriever operations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total retriever operations",
		}, []string{"op", "status"}),
		indexedVectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_vectors",
			Help:      "Number of corpus vectors in the last built index",
		}),
		bands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bands",
			Help:      "Number of bands in the last built index",
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Candidate set size per query before fallback",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_fallbacks_total",
			Help:      "Queries answered by scanning the whole corpus",
		}),
	}

	c.registry.MustRegister(
		c.opLatency,
		c.ops,
		c.indexedVectors,
		c.bands,
		c.candidates,
		c.fallbacks,
	)

	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteToTextfile writes the current metrics in the node-exporter textfile
// format.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// RecordBuild implements srplsh.MetricsCollector.
func (c *Collector) RecordBuild(vectors, bands int, d time.Duration, err error) {
	st := status(err)
	c.opLatency.WithLabelValues("build", st).Observe(d.Seconds())
	c.ops.WithLabelValues("build", st).Inc()

	if err == nil {
		c.indexedVectors.Set(float64(vectors))
		c.bands.Set(float64(bands))
	}
}

// RecordSearch implements srplsh.MetricsCollector.
func (c *Collector) RecordSearch(_, candidates int, fallback bool, d time.Duration, err error) {
	st := status(err)
	c.opLatency.WithLabelValues("search", st).Observe(d.Seconds())
	c.ops.WithLabelValues("search", st).Inc()

	if err != nil {
		return
	}

	c.candidates.Observe(float64(candidates))
	if fallback {
		c.fallbacks.Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
