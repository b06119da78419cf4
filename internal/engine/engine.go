// =============================================================================
// Payments Ledger - Processing Engine
// =============================================================================
//
// The engine consumes the transaction records of one run, in file order, and
// maintains the per-client ledger.
//
// PROCESSING STEPS:
//   1. Build the deposit index from every record (so a dispute may reference
//      a deposit that appears later in the file)
//   2. For each record, in order:
//      a. Resolve the client account, creating it on first reference
//      b. Route the record by operation
//      c. Count the outcome
//   3. Expose the final account snapshots
//
// ROUTING:
//   deposit     amount > 0              -> Credit
//   withdrawal  amount > 0              -> Debit
//   dispute     indexed, not disputed   -> Hold(deposit amount), then track
//   resolve     indexed, disputed       -> Release(deposit amount), then untrack
//   chargeback  indexed, disputed       -> Chargeback(deposit amount), then untrack
//   unknown                             -> ignored
//
// Dispute, resolve and chargeback never read their own amount field.
// Rejected records are not errors: they leave the ledger unchanged and
// processing continues.
//
// =============================================================================

package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/payments-ledger/internal/ledger"
	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// Engine owns the ledger, the deposit index and the dispute tracker of a
// single run. It is not safe for concurrent use.
type Engine struct {
	ledger   *ledger.Ledger
	index    *DepositIndex
	disputes *DisputeTracker
	stats    Stats
	logger   *zap.Logger
}

// New returns an engine with an empty ledger. A nil logger discards logs.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		ledger:   ledger.New(),
		index:    BuildDepositIndex(nil),
		disputes: NewDisputeTracker(),
		stats:    newStats(),
		logger:   logger,
	}
}

// Process applies records to the ledger in order.
//
// RETURNS:
//   - types.ErrEmptyInput if records is empty. The ledger is left untouched.
func (e *Engine) Process(records []types.Transaction) error {
	if len(records) == 0 {
		return fmt.Errorf("process: %w", types.ErrEmptyInput)
	}

	e.index = BuildDepositIndex(records)
	e.logger.Debug("deposit index built", zap.Int("deposits", e.index.Len()))

	for _, record := range records {
		outcome := e.Apply(record)
		e.stats.record(record.Operation, outcome)

		if outcome != OutcomeApplied {
			e.logger.Debug("record skipped",
				zap.Int("row", record.Row),
				zap.String("op", record.Operation.String()),
				zap.Uint16("client", uint16(record.Client)),
				zap.Uint32("tx", uint32(record.Tx)),
				zap.String("reason", outcome.String()),
			)
		}
	}

	return nil
}

// Apply routes a single record against the current deposit index and returns
// what happened to it. Process calls it for every record; it is exported so
// callers can drive the engine record by record after Process has built the
// index.
func (e *Engine) Apply(record types.Transaction) Outcome {
	account := e.ledger.Account(record.Client)

	switch record.Operation {
	case types.OperationDeposit:
		return e.deposit(account, record)
	case types.OperationWithdrawal:
		return e.withdraw(account, record)
	case types.OperationDispute:
		return e.dispute(account, record)
	case types.OperationResolve:
		return e.resolve(account, record)
	case types.OperationChargeback:
		return e.chargeback(account, record)
	default:
		return OutcomeUnknownOperation
	}
}

func (e *Engine) deposit(account *ledger.Account, record types.Transaction) Outcome {
	if !record.Amount.IsPositive() {
		return OutcomeNonPositiveAmount
	}
	if !account.Credit(record.Amount) {
		return OutcomeAccountLocked
	}
	return OutcomeApplied
}

func (e *Engine) withdraw(account *ledger.Account, record types.Transaction) Outcome {
	if !record.Amount.IsPositive() {
		return OutcomeNonPositiveAmount
	}
	if account.Locked {
		return OutcomeAccountLocked
	}
	if !account.Debit(record.Amount) {
		return OutcomeInsufficientFunds
	}
	return OutcomeApplied
}

func (e *Engine) dispute(account *ledger.Account, record types.Transaction) Outcome {
	deposit, ok := e.index.Lookup(record.Tx)
	if !ok {
		return OutcomeUnknownTransaction
	}
	if e.disputes.IsOpen(record.Tx) {
		return OutcomeAlreadyDisputed
	}
	if !account.Hold(deposit.Amount) {
		return OutcomeAccountLocked
	}

	e.disputes.Open(record.Tx)
	return OutcomeApplied
}

func (e *Engine) resolve(account *ledger.Account, record types.Transaction) Outcome {
	deposit, ok := e.index.Lookup(record.Tx)
	if !ok {
		return OutcomeUnknownTransaction
	}
	if !e.disputes.IsOpen(record.Tx) {
		return OutcomeNotDisputed
	}
	if !account.Release(deposit.Amount) {
		return OutcomeAccountLocked
	}

	e.disputes.Close(record.Tx)
	return OutcomeApplied
}

func (e *Engine) chargeback(account *ledger.Account, record types.Transaction) Outcome {
	deposit, ok := e.index.Lookup(record.Tx)
	if !ok {
		return OutcomeUnknownTransaction
	}
	if !e.disputes.IsOpen(record.Tx) {
		return OutcomeNotDisputed
	}
	if !account.Chargeback(deposit.Amount) {
		return OutcomeAccountLocked
	}

	e.disputes.Close(record.Tx)
	return OutcomeApplied
}

// Snapshots returns the final account states in first-seen client order.
func (e *Engine) Snapshots() []ledger.Snapshot {
	return e.ledger.Snapshots()
}

// Stats returns a copy of the outcome counters accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats.clone()
}

// OpenDisputes returns the number of disputes still open.
func (e *Engine) OpenDisputes() int {
	return e.disputes.Len()
}
