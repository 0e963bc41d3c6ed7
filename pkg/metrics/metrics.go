// Package metrics holds the collector's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every instrument the collector reports.
type Metrics struct {
	PollCycles        *prometheus.CounterVec
	PollCycleDuration prometheus.Histogram
	PagesProcessed    prometheus.Counter
	CursorVersion     prometheus.Gauge

	Calculations        *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	QueueDepth          prometheus.Gauge

	SnapshotAccounts       prometheus.Counter
	SnapshotSourceFailures *prometheus.CounterVec

	NotificationFailures prometheus.Counter
}

// New registers the instruments with reg. Pass prometheus.DefaultRegisterer in production and a
// fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PollCycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecollector_poll_cycles_total",
			Help: "Poll cycles by result (ok, skipped, failed)",
		}, []string{"result"}),

		PollCycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "votecollector_poll_cycle_duration_seconds",
			Help:    "Wall time of a poll cycle that held the lock",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),

		PagesProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "votecollector_pages_processed_total",
			Help: "Transaction stream pages fully committed",
		}),

		CursorVersion: f.NewGauge(prometheus.GaugeOpts{
			Name: "votecollector_cursor_state_version",
			Help: "Last committed ledger cursor",
		}),

		Calculations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecollector_calculations_total",
			Help: "Vote calculations by entity kind and result (applied, noop, failed)",
		}, []string{"kind", "result"}),

		CalculationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "votecollector_calculation_duration_seconds",
			Help:    "Wall time of one entity calculation",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"kind"}),

		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "votecollector_queue_pending",
			Help: "Entities waiting in the calculation queue",
		}),

		SnapshotAccounts: f.NewCounter(prometheus.CounterOpts{
			Name: "votecollector_snapshot_accounts_total",
			Help: "Accounts snapshotted with nonzero vote power",
		}),

		SnapshotSourceFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "votecollector_snapshot_source_failures_total",
			Help: "Vote power sources that failed and counted as zero",
		}, []string{"source"}),

		NotificationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "votecollector_notification_failures_total",
			Help: "Change notifications that could not be published",
		}),
	}
}
