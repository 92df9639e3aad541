package engine

import (
	"time"

	"github.com/iho/trxledger/internal/domain"
)

// Telemetry observes every event LedgerEngine.Apply processes, accepted or
// ignored, per SPEC_FULL.md's "telemetry on every transition". It never
// influences control flow — a nil Telemetry is never passed; use NopTelemetry
// in tests that don't care.
type Telemetry interface {
	EventAccepted(ev domain.Event)
	EventIgnored(ev domain.Event, reason error)
	// Duration reports how long one Dispatcher call to Apply took,
	// regardless of whether the event was accepted or ignored.
	Duration(d time.Duration)
}

// NopTelemetry discards every observation. The zero value is ready to use.
type NopTelemetry struct{}

func (NopTelemetry) EventAccepted(domain.Event)       {}
func (NopTelemetry) EventIgnored(domain.Event, error) {}
func (NopTelemetry) Duration(time.Duration)           {}

// RecordingTelemetry accumulates observations in memory, for tests that want
// to assert on exactly what was ignored and why.
type RecordingTelemetry struct {
	Accepted  []domain.Event
	Ignored   []IgnoredEvent
	Durations []time.Duration
}

// IgnoredEvent pairs an ignored event with the reason it was ignored.
type IgnoredEvent struct {
	Event  domain.Event
	Reason error
}

func (r *RecordingTelemetry) EventAccepted(ev domain.Event) {
	r.Accepted = append(r.Accepted, ev)
}

func (r *RecordingTelemetry) EventIgnored(ev domain.Event, reason error) {
	r.Ignored = append(r.Ignored, IgnoredEvent{Event: ev, Reason: reason})
}

func (r *RecordingTelemetry) Duration(d time.Duration) {
	r.Durations = append(r.Durations, d)
}
