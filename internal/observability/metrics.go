package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_match"

// Metrics holds the Prometheus collectors used by the matcher.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	cacheRequests  *prometheus.CounterVec
	embeddingLoads *prometheus.CounterVec
	embeddingUp    prometheus.Gauge
	degraded       *prometheus.CounterVec
	analysisTime   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Keyword cache lookups by backend and result",
			},
			[]string{"backend", "result"},
		),
		embeddingLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embedding_loads_total",
				Help:      "Embedding provider load attempts by result",
			},
			[]string{"result"},
		),
		embeddingUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "embedding_available",
			Help:      "1 when the embedding provider is loaded, 0 otherwise",
		}),
		degraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_total",
				Help:      "Optional stages that ran without embeddings or failed",
			},
			[]string{"stage"},
		),
		analysisTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one resume analysis",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}

	m.registry.MustRegister(m.cacheRequests, m.embeddingLoads, m.embeddingUp, m.degraded, m.analysisTime)
	return m
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// CacheResult counts one cache lookup
func (m *Metrics) CacheResult(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(backend, result).Inc()
}

// EmbeddingLoad counts one provider load attempt and updates the availability gauge
func (m *Metrics) EmbeddingLoad(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.embeddingLoads.WithLabelValues("success").Inc()
		m.embeddingUp.Set(1)
		return
	}
	m.embeddingLoads.WithLabelValues("failure").Inc()
	m.embeddingUp.Set(0)
}

// Degraded counts a stage that fell back or failed
func (m *Metrics) Degraded(stage string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(stage).Inc()
}

// ObserveAnalysis records the duration of one analysis
func (m *Metrics) ObserveAnalysis(d time.Duration) {
	if m == nil {
		return
	}
	m.analysisTime.Observe(d.Seconds())
}

// WriteTextfile writes all metrics in the Prometheus text format to path
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
