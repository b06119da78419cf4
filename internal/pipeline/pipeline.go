// =============================================================================
// Payments Ledger - Pipeline Module
// =============================================================================
//
// This module runs the whole ledger computation for a single input file.
//
// PIPELINE:
//   1. Read every transaction record (CSV or XLSX, by file extension)
//   2. Feed the records to the engine in file order
//   3. Collect the account snapshots and processing statistics
//
// The pipeline does not write output. The caller writes the ledger only when
// Run succeeds, so a failed run never produces partial output.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/payments-ledger/internal/config"
	"github.com/ginjaninja78/payments-ledger/internal/csvparser"
	"github.com/ginjaninja78/payments-ledger/internal/engine"
	"github.com/ginjaninja78/payments-ledger/internal/ledger"
	"github.com/ginjaninja78/payments-ledger/internal/types"
	"github.com/ginjaninja78/payments-ledger/internal/xlsxparser"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a successful run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// FilePath is the input file that was processed.
	FilePath string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Accounts holds one snapshot per client, in output order.
	Accounts []ledger.Snapshot

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// RecordsProcessed is the number of transaction records read.
	RecordsProcessed int

	// Clients is the number of distinct clients seen.
	Clients int

	// LockedClients lists the clients locked by a chargeback.
	LockedClients []types.ClientID

	// OpenDisputes is the number of disputes never resolved or charged back.
	OpenDisputes int

	// Applied counts records that changed the ledger, by operation name.
	Applied map[string]int

	// Rejected counts no-op records, by reason.
	Rejected map[string]int

	// RejectedTotal is the number of no-op records.
	RejectedTotal int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline processes one input file.
type Pipeline struct {
	inputPath string
	config    *config.Config
	logger    *zap.Logger
}

// New creates a pipeline. A nil config uses defaults; a nil logger discards
// logs.
func New(inputPath string, cfg *config.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		inputPath: inputPath,
		config:    cfg,
		logger:    logger,
	}
}

// Run reads the input, processes every record and returns the final ledger.
//
// RETURNS:
//   - The result of the run.
//   - An error if the input cannot be read, holds a malformed record, or holds
//     no records at all (types.ErrEmptyInput).
func (p *Pipeline) Run() (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		FilePath:  p.inputPath,
		StartedAt: time.Now(),
	}

	logger := p.logger.With(
		zap.String("run_id", result.RunID),
		zap.String("input", p.inputPath),
	)
	logger.Info("run started")

	records, err := p.readRecords()
	if err != nil {
		logger.Error("failed to read input", zap.Error(err))
		return nil, fmt.Errorf("failed to read %s: %w", p.inputPath, err)
	}

	eng := engine.New(logger)
	if err := eng.Process(records); err != nil {
		logger.Error("failed to process records", zap.Error(err))
		return nil, fmt.Errorf("failed to process %s: %w", p.inputPath, err)
	}

	result.Accounts = eng.Snapshots()
	if p.config.Output.SortByClient {
		ledger.SortByClient(result.Accounts)
	}

	result.Stats = collectStats(eng, result.Accounts)
	result.Stats.ProcessingTime = time.Since(result.StartedAt)

	logger.Info("run finished",
		zap.Int("records", result.Stats.RecordsProcessed),
		zap.Int("clients", result.Stats.Clients),
		zap.Int("rejected", result.Stats.RejectedTotal),
		zap.Int("locked", len(result.Stats.LockedClients)),
		zap.Duration("elapsed", result.Stats.ProcessingTime),
	)

	return result, nil
}

// readRecords picks the input adapter by file extension.
func (p *Pipeline) readRecords() ([]types.Transaction, error) {
	if strings.EqualFold(filepath.Ext(p.inputPath), ".xlsx") {
		return xlsxparser.Parse(p.inputPath, p.config.Input.SheetName)
	}

	comma, err := p.config.Input.Comma()
	if err != nil {
		return nil, err
	}
	return csvparser.Parse(p.inputPath, comma)
}

// collectStats converts the engine counters into report-friendly names.
func collectStats(eng *engine.Engine, accounts []ledger.Snapshot) ProcessingStats {
	engineStats := eng.Stats()

	stats := ProcessingStats{
		RecordsProcessed: engineStats.Records,
		Clients:          len(accounts),
		OpenDisputes:     eng.OpenDisputes(),
		RejectedTotal:    engineStats.TotalRejected(),
		Applied:          make(map[string]int, len(engineStats.Applied)),
		Rejected:         make(map[string]int, len(engineStats.Rejected)),
	}

	for op, n := range engineStats.Applied {
		stats.Applied[op.String()] = n
	}
	for outcome, n := range engineStats.Rejected {
		stats.Rejected[outcome.String()] = n
	}

	for _, account := range accounts {
		if account.Locked {
			stats.LockedClients = append(stats.LockedClients, account.Client)
		}
	}

	return stats
}
