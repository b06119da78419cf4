// =============================================================================
// Payments Ledger - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// takes the transaction file as its only positional argument and prints the
// resulting account ledger to standard output.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ledger <transactions.csv>)
//   └── versionCmd (ledger version)
//
// The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration
//   3. Setting up logging
//   4. Running the pipeline (see process.go)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose enables debug logging on stderr when set to true.
var verbose bool

// outputFormat overrides output.format ("csv" or "xlsx").
var outputFormat string

// outputPath overrides output.path.
var outputPath string

// sortByClient overrides output.sort_by_client.
var sortByClient bool

// reportDir overrides report.dir.
var reportDir string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "ledger <transactions.csv>",
	Short: "Payments Ledger - Replay a transaction log into client account balances",
	Long: `Payments Ledger reads a log of deposits, withdrawals, disputes, resolves and
chargebacks and prints the final state of every client account.

Input columns:  type, client, tx, amount
Output columns: client, available, held, total, locked

Records are applied in file order. Records the ledger refuses (insufficient
funds, locked account, unknown or duplicate dispute) are skipped silently; a
malformed record aborts the run without any output.

Example Usage:
  ledger transactions.csv > accounts.csv
  ledger transactions.xlsx --sort
  ledger transactions.csv --format xlsx --output accounts.xlsx
  ledger transactions.csv --config ledger.yaml --report-dir ./reports`,

	Args: cobra.MaximumNArgs(1),

	// Errors are printed once, by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: runProcess,
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the flags.
func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// --config flag: Optional YAML configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (defaults are used when omitted)",
	)

	// --verbose flag: Log skipped records and other debug detail to stderr.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().StringVar(
		&outputFormat,
		"format",
		"",
		"Output format: csv or xlsx (overrides output.format)",
	)

	rootCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Write the ledger to this file instead of standard output (required for xlsx)",
	)

	rootCmd.Flags().BoolVar(
		&sortByClient,
		"sort",
		false,
		"Order accounts by client id instead of first appearance",
	)

	rootCmd.Flags().StringVar(
		&reportDir,
		"report-dir",
		"",
		"Write a YAML run report into this directory",
	)
}
