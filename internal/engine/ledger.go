// Package engine implements the pure per-client dispute state machine
// (spec.md §4.4). Apply is the only entry point: a function of an event and
// the client's Account + TransactionLog, with no knowledge of how many
// clients exist or how they're scheduled — that's the Dispatcher's job.
package engine

import (
	"errors"

	"github.com/iho/trxledger/internal/domain"
)

// Apply runs one event through the dispute state machine for a single
// client. The caller guarantees sequential invocation per client
// (spec.md §5); Apply itself is not safe for concurrent use on the same
// Account/TransactionLog pair.
//
// Apply returns a non-nil error only for an *domain.InvariantViolation — an
// engine-internal bug that the caller must treat as fatal (spec.md §7).
// Every semantic rejection in the ignore table below is reported through
// tel and never returned as an error.
func Apply(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	switch ev.Kind {
	case domain.EventDeposit:
		return applyDeposit(ev, acc, log, tel)
	case domain.EventWithdrawal:
		return applyWithdrawal(ev, acc, log, tel)
	case domain.EventDispute:
		return applyDispute(ev, acc, log, tel)
	case domain.EventResolve:
		return applyResolve(ev, acc, log, tel)
	case domain.EventChargeback:
		return applyChargeback(ev, acc, log, tel)
	default:
		return &domain.InvariantViolation{Client: ev.Client, Tx: ev.Tx, Reason: "unknown event kind"}
	}
}

func ignore(ev domain.Event, tel Telemetry, reason error) error {
	tel.EventIgnored(ev, reason)
	return nil
}

func accept(ev domain.Event, tel Telemetry) error {
	tel.EventAccepted(ev)
	return nil
}

func applyDeposit(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	if acc.Locked {
		return ignore(ev, tel, domain.ErrAccountLocked)
	}
	if !ev.Amount.IsPositive() {
		return ignore(ev, tel, domain.ErrInvalidAmount)
	}
	if _, exists := log.Get(ev.Tx); exists {
		// First writer wins (SPEC_FULL.md, resolving spec.md §4.2's open question).
		return ignore(ev, tel, domain.ErrTxExists)
	}

	if err := acc.Deposit(ev.Amount); err != nil {
		var inv *domain.InvariantViolation
		if errors.As(err, &inv) {
			return err
		}
		return ignore(ev, tel, err)
	}

	log.Insert(ev.Tx, domain.TransactionRecord{
		Amount: ev.Amount,
		Client: ev.Client,
		Kind:   domain.Deposit,
		Status: domain.Normal,
	})
	return accept(ev, tel)
}

func applyWithdrawal(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	if acc.Locked {
		return ignore(ev, tel, domain.ErrAccountLocked)
	}
	if !ev.Amount.IsPositive() {
		return ignore(ev, tel, domain.ErrInvalidAmount)
	}
	if _, exists := log.Get(ev.Tx); exists {
		return ignore(ev, tel, domain.ErrTxExists)
	}

	if err := acc.Withdraw(ev.Amount); err != nil {
		var inv *domain.InvariantViolation
		if errors.As(err, &inv) {
			return err
		}
		return ignore(ev, tel, err)
	}

	// Recorded so a later dispute referencing this tx is rejected as
	// ErrNotDisputable rather than ErrTxNotFound (SPEC_FULL.md point 2).
	log.Insert(ev.Tx, domain.TransactionRecord{
		Amount: ev.Amount,
		Client: ev.Client,
		Kind:   domain.Withdrawal,
		Status: domain.Normal,
	})
	return accept(ev, tel)
}

func applyDispute(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	if acc.Locked {
		return ignore(ev, tel, domain.ErrAccountLocked)
	}
	rec, ok := log.Get(ev.Tx)
	if !ok {
		return ignore(ev, tel, domain.ErrTxNotFound)
	}
	if rec.Client != ev.Client {
		return ignore(ev, tel, domain.ErrClientMismatch)
	}
	if rec.Kind != domain.Deposit {
		return ignore(ev, tel, domain.ErrNotDisputable)
	}
	if rec.Status != domain.Normal {
		return ignore(ev, tel, domain.ErrWrongStatus)
	}

	if err := acc.Dispute(rec.Amount); err != nil {
		var inv *domain.InvariantViolation
		if errors.As(err, &inv) {
			return err
		}
		return ignore(ev, tel, err)
	}

	log.SetStatus(ev.Tx, domain.Disputed)
	return accept(ev, tel)
}

func applyResolve(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	if acc.Locked {
		return ignore(ev, tel, domain.ErrAccountLocked)
	}
	rec, ok := log.Get(ev.Tx)
	if !ok {
		return ignore(ev, tel, domain.ErrTxNotFound)
	}
	if rec.Client != ev.Client {
		return ignore(ev, tel, domain.ErrClientMismatch)
	}
	if rec.Status != domain.Disputed {
		return ignore(ev, tel, domain.ErrWrongStatus)
	}

	if err := acc.Resolve(rec.Amount); err != nil {
		var inv *domain.InvariantViolation
		if errors.As(err, &inv) {
			inv.Tx = ev.Tx
			return inv
		}
		return ignore(ev, tel, err)
	}

	log.SetStatus(ev.Tx, domain.Resolved)
	return accept(ev, tel)
}

func applyChargeback(ev domain.Event, acc *domain.Account, log *domain.TransactionLog, tel Telemetry) error {
	if acc.Locked {
		return ignore(ev, tel, domain.ErrAccountLocked)
	}
	rec, ok := log.Get(ev.Tx)
	if !ok {
		return ignore(ev, tel, domain.ErrTxNotFound)
	}
	if rec.Client != ev.Client {
		return ignore(ev, tel, domain.ErrClientMismatch)
	}
	if rec.Status != domain.Disputed {
		return ignore(ev, tel, domain.ErrWrongStatus)
	}

	if err := acc.Chargeback(rec.Amount); err != nil {
		var inv *domain.InvariantViolation
		if errors.As(err, &inv) {
			inv.Tx = ev.Tx
			return inv
		}
		return ignore(ev, tel, err)
	}

	log.SetStatus(ev.Tx, domain.ChargedBack)
	return accept(ev, tel)
}
