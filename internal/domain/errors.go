package domain

import "errors"

var (
	// ErrAccountLocked is returned when an event targets a locked account.
	ErrAccountLocked = errors.New("account is locked")
	// ErrInsufficientFunds is returned when a withdrawal exceeds available funds.
	ErrInsufficientFunds = errors.New("insufficient available funds")
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrTxExists is returned when a deposit or withdrawal reuses a transaction id already on record.
	ErrTxExists = errors.New("transaction id already recorded")
	// ErrTxNotFound is returned when a dispute/resolve/chargeback references an unknown tx.
	ErrTxNotFound = errors.New("transaction not found")
	// ErrNotDisputable is returned when a dispute targets a withdrawal rather than a deposit.
	ErrNotDisputable = errors.New("transaction is not disputable")
	// ErrWrongStatus is returned when a resolve/chargeback targets a tx not in the Disputed state,
	// or a dispute targets a tx not in the Normal state.
	ErrWrongStatus = errors.New("transaction is not in the required status")
	// ErrClientMismatch is returned when an event's client does not own the referenced tx.
	ErrClientMismatch = errors.New("event client does not match transaction owner")
)

// InvariantViolation marks an error as an engine-internal bug rather than a
// semantic rejection. The dispatcher never swallows this: it is surfaced as
// a fatal condition per spec.md §7.
type InvariantViolation struct {
	Client ClientID
	Tx     TxID
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: client " + e.Client.String() + " tx " + e.Tx.String() + ": " + e.Reason
}
