// Package dispatch implements the three interchangeable execution
// topologies spec.md §4.5 requires (serial, sharded-workers,
// actor-per-client), all behind the same small capability set. The
// LedgerEngine stays a pure function injected into each topology — none of
// these hold any ledger logic of their own (spec.md §9, "Topology
// abstraction").
package dispatch

import (
	"sort"
	"time"

	"github.com/iho/trxledger/internal/domain"
	"github.com/iho/trxledger/internal/engine"
)

// Dispatcher routes an ordered event stream to per-client state and, once
// the stream ends, drains a final snapshot per client. All three
// implementations in this package satisfy it and are required to produce
// identical multisets of snapshots for identical input (spec.md §4.5,
// "Equivalence requirement").
type Dispatcher interface {
	// Ingest processes one event. It returns a non-nil error only for an
	// engine-internal invariant violation (spec.md §7); callers must treat
	// that as fatal and stop feeding the dispatcher.
	Ingest(ev domain.Event) error
	// Finalize closes every in-flight executor, awaits drain, and returns
	// one snapshot per client observed. Row order is unspecified
	// (spec.md §4.6).
	Finalize() ([]domain.Snapshot, error)
}

// clientState is the (Account, TransactionLog) pair the Dispatcher owns per
// client (spec.md §3, "Ownership"). Created lazily on first reference.
type clientState struct {
	account *domain.Account
	log     *domain.TransactionLog
}

func newClientState(id domain.ClientID) *clientState {
	return &clientState{
		account: domain.NewAccount(id),
		log:     domain.NewTransactionLog(),
	}
}

// apply runs the event through the engine and reports how long it took,
// regardless of the outcome — the single instrumentation point shared by
// all three topologies (spec.md §4.5's equivalence requirement extends to
// what gets measured, not only what gets computed).
func (cs *clientState) apply(ev domain.Event, tel engine.Telemetry) error {
	start := time.Now()
	err := engine.Apply(ev, cs.account, cs.log, tel)
	tel.Duration(time.Since(start))
	return err
}

// sortSnapshots orders by client id purely to make test assertions and
// golden output deterministic; spec.md §4.6 leaves row order unspecified.
func sortSnapshots(snaps []domain.Snapshot) {
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })
}
