// Package metrics exposes the Prometheus instrumentation for the
// verification pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "founderlens_cache_hits_total",
		Help: "Number of verification requests served from cache.",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "founderlens_cache_misses_total",
		Help: "Number of verification requests that ran the full pipeline.",
	})

	SourceErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "founderlens_source_errors_total",
		Help: "Number of source fetches that recorded an error annotation.",
	}, []string{"source"})

	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "founderlens_pipeline_duration_seconds",
		Help:    "Wall time of a full multi-source verification run.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(CacheHits, CacheMisses, SourceErrors, PipelineDuration)
}
