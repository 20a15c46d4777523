// Package metrics provides Prometheus metrics collection for the catalog API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "astroneer"

// Collector holds all Prometheus metrics for the service.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Catalog metrics
	CatalogRecords   *prometheus.GaugeVec
	CatalogMutations *prometheus.CounterVec

	// Hydration metrics
	HydrationRows     *prometheus.CounterVec
	HydrationDuration prometheus.Histogram

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
	ConfigLastReload   prometheus.Gauge
}

// New creates a new metrics collector registered with the default registry.
func New() *Collector {
	return newCollector(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	return newCollector(promauto.With(reg))
}

func newCollector(factory promauto.Factory) *Collector {
	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),

		CatalogRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_records",
				Help:      "Number of records held per collection",
			},
			[]string{"collection"},
		),
		CatalogMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_mutations_total",
				Help:      "Successful create/update/delete operations per collection",
			},
			[]string{"collection", "op"},
		),

		HydrationRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hydration_rows_total",
				Help:      "CSV rows processed during hydration by outcome",
			},
			[]string{"collection", "outcome"},
		),
		HydrationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "hydration_duration_seconds",
				Help:      "Time spent hydrating the catalog at startup",
				Buckets:   []float64{.001, .01, .1, .5, 1, 5, 10, 30},
			},
		),

		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// SetCounts publishes per-collection record counts.
// A nil collector is a no-op so callers need not check whether metrics are on.
func (c *Collector) SetCounts(counts map[string]int) {
	if c == nil {
		return
	}
	for name, n := range counts {
		c.CatalogRecords.WithLabelValues(name).Set(float64(n))
	}
}

// RecordMutation counts a successful write to a collection.
func (c *Collector) RecordMutation(collection, op string) {
	if c == nil {
		return
	}
	c.CatalogMutations.WithLabelValues(collection, op).Inc()
}

// RecordHydrationRow counts one hydration row outcome ("loaded", "duplicate", "skipped").
func (c *Collector) RecordHydrationRow(collection, outcome string) {
	if c == nil {
		return
	}
	c.HydrationRows.WithLabelValues(collection, outcome).Inc()
}

// NormalizePath bounds label cardinality for requests that matched no route.
func NormalizePath(path string) string {
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}

// ConfigReloaded records the outcome of a configuration reload.
func (c *Collector) ConfigReloaded(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.ConfigReloadErrors.Inc()
		return
	}
	c.ConfigReloads.Inc()
	c.ConfigLastReload.SetToCurrentTime()
}
