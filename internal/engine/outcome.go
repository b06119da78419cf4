package engine

import "github.com/ginjaninja78/payments-ledger/internal/types"

// Outcome is the result of routing a single record. Every outcome other than
// OutcomeApplied is a silent no-op on the ledger.
type Outcome uint8

const (
	OutcomeApplied Outcome = iota
	OutcomeNonPositiveAmount
	OutcomeAccountLocked
	OutcomeInsufficientFunds
	OutcomeUnknownTransaction
	OutcomeAlreadyDisputed
	OutcomeNotDisputed
	OutcomeUnknownOperation
)

// String returns a stable snake_case name, used in log fields and reports.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNonPositiveAmount:
		return "non_positive_amount"
	case OutcomeAccountLocked:
		return "account_locked"
	case OutcomeInsufficientFunds:
		return "insufficient_funds"
	case OutcomeUnknownTransaction:
		return "unknown_transaction"
	case OutcomeAlreadyDisputed:
		return "already_disputed"
	case OutcomeNotDisputed:
		return "not_disputed"
	case OutcomeUnknownOperation:
		return "unknown_operation"
	default:
		return "invalid"
	}
}

// Stats counts what happened to the records of one run.
type Stats struct {
	// Records is the number of records processed.
	Records int

	// Applied counts records that changed the ledger, per operation.
	Applied map[types.Operation]int

	// Rejected counts no-op records, per reason.
	Rejected map[Outcome]int
}

func newStats() Stats {
	return Stats{
		Applied:  make(map[types.Operation]int),
		Rejected: make(map[Outcome]int),
	}
}

func (s *Stats) record(op types.Operation, outcome Outcome) {
	s.Records++
	if outcome == OutcomeApplied {
		s.Applied[op]++
		return
	}
	s.Rejected[outcome]++
}

func (s Stats) clone() Stats {
	c := Stats{
		Records:  s.Records,
		Applied:  make(map[types.Operation]int, len(s.Applied)),
		Rejected: make(map[Outcome]int, len(s.Rejected)),
	}
	for op, n := range s.Applied {
		c.Applied[op] = n
	}
	for outcome, n := range s.Rejected {
		c.Rejected[outcome] = n
	}
	return c
}

// TotalRejected returns the number of records that were no-ops.
func (s Stats) TotalRejected() int {
	total := 0
	for _, n := range s.Rejected {
		total += n
	}
	return total
}
