package kits

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus instruments.
type Metrics struct {
	Queries       *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	CatalogSize   prometheus.Gauge
	LoadFailures  prometheus.Counter
}

// NewMetrics registers the kits metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routerhaus",
			Subsystem: "kits",
			Name:      "queries_total",
			Help:      "Catalog queries evaluated, by sort strategy.",
		}, []string{"sort"}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "routerhaus",
			Subsystem: "kits",
			Name:      "query_duration_seconds",
			Help:      "Time spent filtering, sorting and paginating.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		CatalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "routerhaus",
			Subsystem: "kits",
			Name:      "catalog_size",
			Help:      "Number of kits in the loaded catalog.",
		}),
		LoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "routerhaus",
			Subsystem: "kits",
			Name:      "catalog_load_failures_total",
			Help:      "Catalog loads where every candidate source failed.",
		}),
	}
}
