package domain

// Snapshot is the finalized per-client state emitted by the SnapshotSink
// (spec.md §4.6). Total is computed once at snapshot time, never stored on
// Account.
type Snapshot struct {
	Client    ClientID
	Available Money
	Held      Money
	Total     Money
	Locked    bool
}

// Snapshot derives a Snapshot from the live account. Returns an
// InvariantViolation if Available+Held overflows Money's representable
// range — this can only happen if CheckedAdd/CheckedSub were bypassed
// elsewhere, which would itself be an engine bug.
func (a *Account) Snapshot() (Snapshot, error) {
	total, err := a.Total()
	if err != nil {
		return Snapshot{}, &InvariantViolation{Client: a.ID, Reason: "snapshot: " + err.Error()}
	}
	return Snapshot{
		Client:    a.ID,
		Available: a.Available,
		Held:      a.Held,
		Total:     total,
		Locked:    a.Locked,
	}, nil
}
