package memo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the cache collectors, labelled by stage. One Metrics value is
// shared by every cache reporting to the same registerer.
type Metrics struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	failures *prometheus.CounterVec
	compute  *prometheus.HistogramVec
}

// NewMetrics creates the cache collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fame_cache_hits_total",
			Help: "Total stage cache lookups served from the cache",
		}, []string{"stage"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fame_cache_misses_total",
			Help: "Total stage cache lookups that required a computation",
		}, []string{"stage"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fame_cache_compute_errors_total",
			Help: "Total stage computations that returned an error",
		}, []string{"stage"}),
		compute: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fame_cache_compute_seconds",
			Help:    "Stage computation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"stage"}),
	}
}

type stageMetrics struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	failures prometheus.Counter
	compute  prometheus.Observer
}

func (m *Metrics) stage(name string) *stageMetrics {
	if m == nil {
		return nil
	}

	return &stageMetrics{
		hits:     m.hits.WithLabelValues(name),
		misses:   m.misses.WithLabelValues(name),
		failures: m.failures.WithLabelValues(name),
		compute:  m.compute.WithLabelValues(name),
	}
}
