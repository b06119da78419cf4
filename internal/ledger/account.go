// =============================================================================
// Payments Ledger - Account
// =============================================================================
//
// An Account is the balance state of one client. It is a two-state machine:
//
//   active ──chargeback──▶ locked
//
// Locked is terminal. A locked account refuses Credit, Debit and Hold, but
// Release and Chargeback still apply so that disputes opened before the lock
// can be settled.
//
// BALANCE INVARIANT:
//   Total == Available + Held after every operation.
//
// All operations take a non-negative amount. Callers filter non-positive
// deposit and withdrawal amounts before calling Credit or Debit.
//
// =============================================================================

package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// Account holds the balances of a single client.
type Account struct {
	// Client is the owner of the account.
	Client types.ClientID

	// Available is the amount usable for withdrawals and new holds.
	Available decimal.Decimal

	// Held is the amount frozen by open disputes.
	Held decimal.Decimal

	// Total is Available + Held.
	Total decimal.Decimal

	// Locked is set by a chargeback and never cleared.
	Locked bool
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(client types.ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Credit adds amount to the available funds.
// Returns false, leaving the account unchanged, when the account is locked.
func (a *Account) Credit(amount decimal.Decimal) bool {
	if a.Locked {
		return false
	}

	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)

	return true
}

// Debit removes amount from the available funds.
// Returns false when the account is locked or Available < amount.
func (a *Account) Debit(amount decimal.Decimal) bool {
	if a.Locked {
		return false
	}

	if a.Available.LessThan(amount) {
		return false
	}

	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)

	return true
}

// Hold moves amount from available to held. Sufficiency is not checked:
// a dispute freezes the full deposit even if part of it was withdrawn, so
// Available may go negative.
// Returns false when the account is locked.
func (a *Account) Hold(amount decimal.Decimal) bool {
	if a.Locked {
		return false
	}

	a.Held = a.Held.Add(amount)
	a.Available = a.Available.Sub(amount)

	return true
}

// Release moves amount from held back to available. It always succeeds,
// locked or not.
func (a *Account) Release(amount decimal.Decimal) bool {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)

	return true
}

// Chargeback removes held funds from the account and locks it. It always
// succeeds, locked or not.
func (a *Account) Chargeback(amount decimal.Decimal) bool {
	a.Held = a.Held.Sub(amount)
	a.Total = a.Total.Sub(amount)
	a.Locked = true

	return true
}

// Snapshot returns an immutable copy of the account state.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total,
		Locked:    a.Locked,
	}
}
