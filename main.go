// =============================================================================
// Payments Ledger - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Payments Ledger CLI. It delegates to
// the Cobra root command in the cmd package.
//
// USAGE:
//   ledger <transactions.csv>   - Print the account ledger for a transaction log
//   ledger version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (record model, ledger, engine, adapters)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/payments-ledger/cmd"
)

func main() {
	cmd.Execute()
}
