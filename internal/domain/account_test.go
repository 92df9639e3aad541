package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseAmount(s)
	require.NoError(t, err)
	return m
}

func TestAccount_Deposit(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "10.0")))
	assert.Equal(t, "10.0000", acc.Available.FormatFixed())
}

func TestAccount_Deposit_LockedRejected(t *testing.T) {
	acc := NewAccount(1)
	acc.Locked = true
	assert.ErrorIs(t, acc.Deposit(amt(t, "10.0")), ErrAccountLocked)
}

func TestAccount_Withdraw_InsufficientFunds(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "5.0")))
	assert.ErrorIs(t, acc.Withdraw(amt(t, "10.0")), ErrInsufficientFunds)
	assert.Equal(t, "5.0000", acc.Available.FormatFixed(), "balance must be unchanged after rejected withdrawal")
}

func TestAccount_Withdraw_ExactBalance(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "5.0")))
	require.NoError(t, acc.Withdraw(amt(t, "5.0")))
	assert.True(t, acc.Available.Equal(Zero))
}

func TestAccount_Dispute_AllowsNegativeAvailable(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "10.0")))
	require.NoError(t, acc.Withdraw(amt(t, "10.0")))

	require.NoError(t, acc.Dispute(amt(t, "10.0")))
	assert.True(t, acc.Available.IsNegative())
	assert.Equal(t, "10.0000", acc.Held.FormatFixed())
}

func TestAccount_Resolve_MovesHeldBackToAvailable(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "10.0")))
	require.NoError(t, acc.Dispute(amt(t, "10.0")))

	require.NoError(t, acc.Resolve(amt(t, "10.0")))
	assert.Equal(t, "10.0000", acc.Available.FormatFixed())
	assert.True(t, acc.Held.Equal(Zero))
}

func TestAccount_Resolve_HeldTooLowIsInvariantViolation(t *testing.T) {
	acc := NewAccount(1)
	err := acc.Resolve(amt(t, "10.0"))
	var inv *InvariantViolation
	assert.ErrorAs(t, err, &inv)
}

func TestAccount_Chargeback_LocksAccount(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "10.0")))
	require.NoError(t, acc.Dispute(amt(t, "10.0")))

	require.NoError(t, acc.Chargeback(amt(t, "10.0")))
	assert.True(t, acc.Locked)
	assert.True(t, acc.Held.Equal(Zero))
}

func TestAccount_Chargeback_RejectedWhenLocked(t *testing.T) {
	acc := NewAccount(1)
	acc.Locked = true
	assert.ErrorIs(t, acc.Chargeback(amt(t, "10.0")), ErrAccountLocked)
}

func TestAccount_Total(t *testing.T) {
	acc := NewAccount(1)
	require.NoError(t, acc.Deposit(amt(t, "10.0")))
	require.NoError(t, acc.Deposit(amt(t, "5.0")))
	require.NoError(t, acc.Dispute(amt(t, "3.0")))

	total, err := acc.Total()
	require.NoError(t, err)
	assert.Equal(t, "15.0000", total.FormatFixed())
}
