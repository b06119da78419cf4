package engine

import "github.com/ginjaninja78/payments-ledger/internal/types"

// DisputeTracker is the set of transactions under an open dispute.
// A TxID is a member iff its deposit is currently held by a dispute that has
// not been resolved or charged back.
type DisputeTracker struct {
	open map[types.TxID]struct{}
}

// NewDisputeTracker returns an empty tracker.
func NewDisputeTracker() *DisputeTracker {
	return &DisputeTracker{
		open: make(map[types.TxID]struct{}),
	}
}

// IsOpen reports whether tx is under an open dispute.
func (t *DisputeTracker) IsOpen(tx types.TxID) bool {
	_, ok := t.open[tx]
	return ok
}

// Open marks tx as disputed.
func (t *DisputeTracker) Open(tx types.TxID) {
	t.open[tx] = struct{}{}
}

// Close removes tx from the open disputes.
func (t *DisputeTracker) Close(tx types.TxID) {
	delete(t.open, tx)
}

// Len returns the number of open disputes.
func (t *DisputeTracker) Len() int {
	return len(t.open)
}
