// =============================================================================
// Payments Ledger - Shared Types
// =============================================================================
//
// This package contains the record model shared by the input adapters, the
// engine and the output writers. Keeping it here avoids import cycles between:
//   - csvparser / xlsxparser (produce Transactions)
//   - validation            (parses the typed fields)
//   - engine                (consumes Transactions)
//
// =============================================================================

package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a transaction. It is unique among deposits and withdrawals;
// dispute, resolve and chargeback records reference an existing TxID.
type TxID uint32

// =============================================================================
// OPERATION
// =============================================================================

// Operation is the kind of a transaction record. It is decided once, when the
// record is parsed, so the engine never compares strings.
type Operation uint8

const (
	// OperationUnknown is any type string the engine does not recognize.
	// Records carrying it are skipped.
	OperationUnknown Operation = iota
	OperationDeposit
	OperationWithdrawal
	OperationDispute
	OperationResolve
	OperationChargeback
)

// operationNames maps the input spelling of each operation to its value.
var operationNames = map[string]Operation{
	"deposit":    OperationDeposit,
	"withdrawal": OperationWithdrawal,
	"dispute":    OperationDispute,
	"resolve":    OperationResolve,
	"chargeback": OperationChargeback,
}

// ParseOperation converts the raw "type" column into an Operation.
// The value is trimmed and lower-cased first. Unrecognized values return
// OperationUnknown; this is not an error.
func ParseOperation(raw string) Operation {
	if op, ok := operationNames[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return op
	}
	return OperationUnknown
}

// String returns the input spelling of the operation.
func (o Operation) String() string {
	switch o {
	case OperationDeposit:
		return "deposit"
	case OperationWithdrawal:
		return "withdrawal"
	case OperationDispute:
		return "dispute"
	case OperationResolve:
		return "resolve"
	case OperationChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// =============================================================================
// TRANSACTION RECORD
// =============================================================================

// Transaction is one input row. It is never mutated after parsing.
type Transaction struct {
	// Operation is the parsed "type" column.
	Operation Operation

	// Client is the "client" column.
	Client ClientID

	// Tx is the "tx" column.
	Tx TxID

	// Amount is the "amount" column. Empty values default to zero.
	// Only deposits and withdrawals use it; dispute, resolve and chargeback
	// records recover the amount from the referenced deposit.
	Amount decimal.Decimal

	// Row is the 1-based row number in the source file, header included.
	// Used in log fields and error messages only.
	Row int
}
