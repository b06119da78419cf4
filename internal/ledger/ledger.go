package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// Snapshot is the final state of one client account, as emitted to the
// output writers.
type Snapshot struct {
	Client    types.ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Ledger is the table of client accounts for a single run. It is owned by
// one engine and is not safe for concurrent use.
type Ledger struct {
	accounts map[types.ClientID]*Account

	// order records clients in the order they were first referenced so the
	// output is stable across runs of the same input.
	order []types.ClientID
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		accounts: make(map[types.ClientID]*Account),
	}
}

// Account returns the account of client, creating it with zero balances on
// first reference.
func (l *Ledger) Account(client types.ClientID) *Account {
	if account, ok := l.accounts[client]; ok {
		return account
	}

	account := NewAccount(client)
	l.accounts[client] = account
	l.order = append(l.order, client)

	return account
}

// Len returns the number of accounts in the ledger.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Snapshots returns one snapshot per client in first-seen order.
func (l *Ledger) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(l.order))
	for _, client := range l.order {
		snapshots = append(snapshots, l.accounts[client].Snapshot())
	}
	return snapshots
}

// SortByClient orders snapshots by ascending client id, in place.
func SortByClient(snapshots []Snapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Client < snapshots[j].Client
	})
}
