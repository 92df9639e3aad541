package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for a trx run, registered against a
// registry private to that run rather than the global default registerer —
// a CLI invoked repeatedly in-process (as the test suite does) would
// otherwise hit prometheus's duplicate-registration panic.
type Metrics struct {
	Registry *prometheus.Registry

	// EventsProcessed counts every event the engine accepted, labeled by
	// kind (deposit, withdrawal, dispute, resolve, chargeback).
	EventsProcessed *prometheus.CounterVec

	// EventsIgnored counts every event the engine deliberately dropped
	// without mutating state, labeled by reason (spec.md §4.4's ignore
	// cases: unknown tx, wrong client, wrong status, locked account, ...).
	EventsIgnored *prometheus.CounterVec

	// InvariantViolations counts fatal state-machine bugs (spec.md §4.6);
	// this should never be non-zero against a correct engine.
	InvariantViolations prometheus.Counter

	// ApplyDuration measures per-event Apply latency.
	ApplyDuration prometheus.Histogram

	// RowsSkipped counts malformed input rows discarded by the decoder
	// (spec.md §7).
	RowsSkipped prometheus.Counter

	// ClientsFinalized records how many client snapshots a run emitted.
	ClientsFinalized prometheus.Gauge
}

// New creates and registers all Prometheus metrics for a run, against a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	fac := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		EventsProcessed: fac.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trx_events_processed_total",
				Help: "Total number of events accepted by the engine, by kind",
			},
			[]string{"kind"},
		),
		EventsIgnored: fac.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trx_events_ignored_total",
				Help: "Total number of events ignored by the engine, by reason",
			},
			[]string{"reason"},
		),
		InvariantViolations: fac.NewCounter(prometheus.CounterOpts{
			Name: "trx_invariant_violations_total",
			Help: "Total number of fatal invariant violations raised by the engine",
		}),
		ApplyDuration: fac.NewHistogram(prometheus.HistogramOpts{
			Name:    "trx_apply_duration_seconds",
			Help:    "Duration of a single engine.Apply call",
			Buckets: prometheus.DefBuckets,
		}),
		RowsSkipped: fac.NewCounter(prometheus.CounterOpts{
			Name: "trx_rows_skipped_total",
			Help: "Total number of malformed input rows skipped by the decoder",
		}),
		ClientsFinalized: fac.NewGauge(prometheus.GaugeOpts{
			Name: "trx_clients_finalized",
			Help: "Number of client snapshots emitted by the last run",
		}),
	}
}
