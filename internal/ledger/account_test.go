package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAccount(t *testing.T, a *Account, available, held, total string) {
	t.Helper()
	assert.True(t, a.Available.Equal(dec(available)), "available=%s want %s", a.Available, available)
	assert.True(t, a.Held.Equal(dec(held)), "held=%s want %s", a.Held, held)
	assert.True(t, a.Total.Equal(dec(total)), "total=%s want %s", a.Total, total)
	assert.True(t, a.Total.Equal(a.Available.Add(a.Held)), "total must equal available + held")
}

func TestNewAccount(t *testing.T) {
	a := NewAccount(7)
	assert.EqualValues(t, 7, a.Client)
	assert.False(t, a.Locked)
	assertAccount(t, a, "0", "0", "0")
}

func TestCredit(t *testing.T) {
	a := NewAccount(1)
	assert.True(t, a.Credit(dec("1.2345")))
	assert.True(t, a.Credit(dec("0.0001")))
	assertAccount(t, a, "1.2346", "0", "1.2346")
}

func TestDebit(t *testing.T) {
	a := NewAccount(1)
	a.Credit(dec("10"))

	assert.True(t, a.Debit(dec("4")))
	assertAccount(t, a, "6", "0", "6")

	// Exactly the available balance is allowed.
	assert.True(t, a.Debit(dec("6")))
	assertAccount(t, a, "0", "0", "0")

	assert.False(t, a.Debit(dec("0.0001")))
	assertAccount(t, a, "0", "0", "0")
}

func TestHoldAndRelease(t *testing.T) {
	a := NewAccount(1)
	a.Credit(dec("10"))

	assert.True(t, a.Hold(dec("4")))
	assertAccount(t, a, "6", "4", "10")

	assert.True(t, a.Release(dec("4")))
	assertAccount(t, a, "10", "0", "10")
}

func TestHoldMayDriveAvailableNegative(t *testing.T) {
	a := NewAccount(1)
	a.Credit(dec("1"))

	assert.True(t, a.Hold(dec("3")))
	assertAccount(t, a, "-2", "3", "1")
}

func TestChargebackLocks(t *testing.T) {
	a := NewAccount(1)
	a.Credit(dec("10"))
	a.Hold(dec("4"))

	assert.True(t, a.Chargeback(dec("4")))
	assert.True(t, a.Locked)
	assertAccount(t, a, "6", "0", "6")
}

func TestLockedAccountRefusesCreditDebitHold(t *testing.T) {
	a := NewAccount(1)
	a.Credit(dec("10"))
	a.Hold(dec("2"))
	a.Hold(dec("3"))
	a.Chargeback(dec("2"))

	assert.False(t, a.Credit(dec("1")))
	assert.False(t, a.Debit(dec("1")))
	assert.False(t, a.Hold(dec("1")))
	assertAccount(t, a, "5", "3", "8")

	// Release and chargeback ignore the lock.
	assert.True(t, a.Release(dec("1")))
	assertAccount(t, a, "6", "2", "8")
	assert.True(t, a.Chargeback(dec("2")))
	assertAccount(t, a, "6", "0", "6")
	assert.True(t, a.Locked)
}
