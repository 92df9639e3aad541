package domain

// Account holds the per-client balances and lock state described in
// spec.md §3. total is never materialized as a field; it is derived on
// snapshot as Available + Held.
type Account struct {
	ID        ClientID
	Available Money
	Held      Money
	Locked    bool
}

// NewAccount returns a fresh, unlocked, zero-balance account for id.
func NewAccount(id ClientID) *Account {
	return &Account{ID: id, Available: Zero, Held: Zero}
}

// Deposit credits available funds. Fails if the account is locked.
func (a *Account) Deposit(amount Money) error {
	if a.Locked {
		return ErrAccountLocked
	}
	sum, err := CheckedAdd(a.Available, amount)
	if err != nil {
		return err
	}
	a.Available = sum
	return nil
}

// Withdraw debits available funds. Fails if the account is locked or if
// available funds are insufficient — a withdrawal is never permitted to
// drive available negative (spec.md §3).
func (a *Account) Withdraw(amount Money) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	diff, err := CheckedSub(a.Available, amount)
	if err != nil {
		return err
	}
	a.Available = diff
	return nil
}

// Dispute moves amount from available to held. Available may go negative
// here — the disputed funds may already have been withdrawn — which is
// permitted and expected (spec.md §4.3).
func (a *Account) Dispute(amount Money) error {
	if a.Locked {
		return ErrAccountLocked
	}
	avail, err := CheckedSub(a.Available, amount)
	if err != nil {
		return err
	}
	held, err := CheckedAdd(a.Held, amount)
	if err != nil {
		return err
	}
	a.Available = avail
	a.Held = held
	return nil
}

// Resolve moves amount from held back to available. A held balance lower
// than amount is an engine-internal bug: the dispute state machine
// guarantees held >= the disputed amount for any record still in the
// Disputed status, so this can only happen if the engine itself is broken.
func (a *Account) Resolve(amount Money) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Held.LessThan(amount) {
		return &InvariantViolation{Client: a.ID, Reason: "resolve: held < amount"}
	}
	held, err := CheckedSub(a.Held, amount)
	if err != nil {
		return err
	}
	avail, err := CheckedAdd(a.Available, amount)
	if err != nil {
		return err
	}
	a.Held = held
	a.Available = avail
	return nil
}

// Chargeback removes amount from held and locks the account. Lock is
// sticky and is never cleared (spec.md §4.3, §4.4). A held balance lower
// than amount is an engine-internal bug, same reasoning as Resolve.
func (a *Account) Chargeback(amount Money) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Held.LessThan(amount) {
		return &InvariantViolation{Client: a.ID, Reason: "chargeback: held < amount"}
	}
	held, err := CheckedSub(a.Held, amount)
	if err != nil {
		return err
	}
	a.Held = held
	a.Locked = true
	return nil
}

// Total derives available + held for the final snapshot. Never stored.
func (a *Account) Total() (Money, error) {
	return CheckedAdd(a.Available, a.Held)
}
