package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics bundles the query-path collectors.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal  *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	ResultSize    prometheus.Histogram
	StoreEvents   prometheus.Gauge
}

// New builds and registers the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake",
			Name:      "queries_total",
			Help:      "Filter queries by outcome (ok, invalid, superseded, timeout, not_ready, error).",
		}, []string{"outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake",
			Name:      "query_duration_seconds",
			Help:      "Wall time of one filter-query-render cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		ResultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake",
			Name:      "query_result_events",
			Help:      "Events returned per query after the cap.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000},
		}),
		StoreEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake",
			Name:      "store_events",
			Help:      "Events loaded in the store.",
		}),
	}

	reg.MustRegister(m.QueriesTotal, m.QueryDuration, m.ResultSize, m.StoreEvents)

	return m
}

// Handler exposes the registry in prometheus text format, wrapped for Gin.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
