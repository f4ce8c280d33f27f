package catalog

import (
	"catalog-sync/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes synchronization counters to Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	records     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
	mirrorSize  prometheus.Gauge
}

// NewMetrics creates and registers the sync metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_sync_runs_total",
			Help: "Synchronization runs by result.",
		}, []string{"result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_sync_records_total",
			Help: "Mirror records written or skipped, by action.",
		}, []string{"action"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_sync_duration_seconds",
			Help:    "Duration of synchronization runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
		mirrorSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_sync_mirror_products",
			Help: "Products in the mirror after the last successful run.",
		}),
	}
	reg.MustRegister(m.runs, m.records, m.duration, m.lastSuccess, m.mirrorSize)
	return m
}

// Observe records the outcome of one run. report may be nil when the run
// failed before writing.
func (m *Metrics) Observe(report *reconcile.Report, err error) {
	if m == nil {
		return
	}

	if report != nil {
		m.records.WithLabelValues("inserted").Add(float64(report.Inserted))
		m.records.WithLabelValues("updated").Add(float64(report.Updated))
		m.records.WithLabelValues("deleted").Add(float64(report.Deleted))
		m.records.WithLabelValues("skipped").Add(float64(report.Skipped))
		m.duration.Observe(float64(report.DurationMs) / 1000)
	}

	if err != nil {
		m.runs.WithLabelValues("failure").Inc()
		return
	}

	m.runs.WithLabelValues("success").Inc()
	if report != nil {
		m.lastSuccess.Set(float64(report.FinishedAt.Unix()))
		m.mirrorSize.Set(float64(report.RemoteCount))
	}
}
