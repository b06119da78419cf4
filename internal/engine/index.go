package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// Deposit is what the index remembers about a deposit record.
type Deposit struct {
	Client types.ClientID
	Amount decimal.Decimal
	Row    int
}

// DepositIndex maps a transaction id to the deposit that created it, so that
// dispute, resolve and chargeback records (which carry no amount) can recover
// the deposited amount.
type DepositIndex struct {
	deposits map[types.TxID]Deposit
}

// BuildDepositIndex makes one forward pass over records and indexes every
// deposit with a positive amount. A later deposit reusing a TxID overwrites
// the earlier entry. Withdrawals are never indexed, so they cannot be
// disputed.
func BuildDepositIndex(records []types.Transaction) *DepositIndex {
	index := &DepositIndex{
		deposits: make(map[types.TxID]Deposit),
	}

	for _, record := range records {
		if record.Operation != types.OperationDeposit {
			continue
		}
		if !record.Amount.IsPositive() {
			continue
		}

		index.deposits[record.Tx] = Deposit{
			Client: record.Client,
			Amount: record.Amount,
			Row:    record.Row,
		}
	}

	return index
}

// Lookup returns the deposit indexed under tx. A missing entry is an expected
// outcome: the referencing record becomes a no-op.
func (i *DepositIndex) Lookup(tx types.TxID) (Deposit, bool) {
	deposit, ok := i.deposits[tx]
	return deposit, ok
}

// Len returns the number of indexed deposits.
func (i *DepositIndex) Len() int {
	return len(i.deposits)
}
