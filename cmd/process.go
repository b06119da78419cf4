// =============================================================================
// Payments Ledger - Process
// =============================================================================
//
// This file holds the body of the root command: it orchestrates one run.
//
// PROCESSING PIPELINE:
//   1. Check the input argument and that the file exists
//   2. Load configuration and apply flag overrides
//   3. Build the logger
//   4. Run the pipeline (parse + engine)
//   5. Write the run report, if enabled
//   6. Write the ledger (only if every earlier step succeeded)
//
// The ledger is written last, so any failure leaves standard output empty.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/payments-ledger/internal/config"
	"github.com/ginjaninja78/payments-ledger/internal/logging"
	"github.com/ginjaninja78/payments-ledger/internal/output"
	"github.com/ginjaninja78/payments-ledger/internal/pipeline"
	"github.com/ginjaninja78/payments-ledger/pkg/utils"
)

// errMissingInput is returned when no input file argument is given.
var errMissingInput = errors.New("file name argument not found, usage: ledger <transactions.csv>")

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess runs the ledger for the file named by args[0].
func runProcess(cmd *cobra.Command, args []string) error {
	// =========================================================================
	// STEP 1: PRE-FLIGHT
	// =========================================================================

	if len(args) == 0 {
		return errMissingInput
	}
	inputPath := args[0]

	if err := utils.CheckInputFile(inputPath); err != nil {
		return fmt.Errorf("%w, please check the path is correct", err)
	}

	// =========================================================================
	// STEP 2: CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	// =========================================================================
	// STEP 3: LOGGING
	// =========================================================================

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// =========================================================================
	// STEP 4: RUN
	// =========================================================================

	result, err := pipeline.New(inputPath, cfg, logger).Run()
	if err != nil {
		return fmt.Errorf("engine failed to run: %w", err)
	}

	// =========================================================================
	// STEP 5: RUN REPORT
	// =========================================================================

	if cfg.Report.Dir != "" {
		reportPath, err := utils.WriteRunReport(buildReport(result, cfg), cfg.Report.Dir, cfg.Report.FileNameFormat)
		if err != nil {
			return err
		}
		logger.Info("run report written", zap.String("path", reportPath))
	}

	// =========================================================================
	// STEP 6: WRITE THE LEDGER
	// =========================================================================

	if err := output.Write(cfg.Output, cmd.OutOrStdout(), result.Accounts); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// applyFlags overrides configuration values with the flags that were set.
// Empty / false flags leave the configuration untouched.
func applyFlags(cfg *config.Config) {
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if sortByClient {
		cfg.Output.SortByClient = true
	}
	if reportDir != "" {
		cfg.Report.Dir = reportDir
	}
}

// buildReport converts a pipeline result into the run report layout.
func buildReport(result *pipeline.Result, cfg *config.Config) utils.RunReport {
	locked := make([]uint16, 0, len(result.Stats.LockedClients))
	for _, client := range result.Stats.LockedClients {
		locked = append(locked, uint16(client))
	}

	return utils.RunReport{
		RunID:            result.RunID,
		InputFile:        result.FilePath,
		StartTime:        result.StartedAt,
		Duration:         result.Stats.ProcessingTime.String(),
		RecordsProcessed: result.Stats.RecordsProcessed,
		Clients:          result.Stats.Clients,
		LockedClients:    locked,
		OpenDisputes:     result.Stats.OpenDisputes,
		Applied:          result.Stats.Applied,
		Rejected:         result.Stats.Rejected,
		RejectedTotal:    result.Stats.RejectedTotal,
		OutputFormat:     cfg.Output.Format,
		OutputPath:       cfg.Output.Path,
	}
}
