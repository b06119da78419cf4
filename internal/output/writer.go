// =============================================================================
// Payments Ledger - Output Writer
// =============================================================================
//
// This module writes the final account snapshots. Two formats are supported:
//
//   csv  : comma-separated text, to standard output or a file
//   xlsx : an Excel workbook with one sheet
//
// Both formats carry the same columns:
//
//   client,available,held,total,locked
//   1,1.5000,0.0000,1.5000,false
//
// Amounts always have exactly four fractional digits.
//
// =============================================================================

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ginjaninja78/payments-ledger/internal/config"
	"github.com/ginjaninja78/payments-ledger/internal/ledger"
)

// Precision is the number of fractional digits of every amount column.
const Precision = 4

// Header is the column row of every output format.
var Header = []string{"client", "available", "held", "total", "locked"}

// =============================================================================
// DISPATCH
// =============================================================================

// Write emits snapshots in the configured format.
//
// PARAMETERS:
//   - settings: The output settings (format, path, sheet name).
//   - stdout: Where CSV goes when settings.Path is empty.
//   - snapshots: The rows to write, already in their final order.
func Write(settings config.OutputSettings, stdout io.Writer, snapshots []ledger.Snapshot) error {
	switch settings.Format {
	case config.FormatXLSX:
		return WriteXLSX(settings.Path, settings.SheetName, snapshots)
	case config.FormatCSV, "":
		if settings.Path == "" {
			return WriteCSV(stdout, snapshots)
		}
		return writeCSVFile(settings.Path, snapshots)
	default:
		return fmt.Errorf("unknown output format %q", settings.Format)
	}
}

// =============================================================================
// CSV
// =============================================================================

// WriteCSV writes the header and one row per snapshot to w.
func WriteCSV(w io.Writer, snapshots []ledger.Snapshot) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, snapshot := range snapshots {
		if err := writer.Write(Row(snapshot)); err != nil {
			return fmt.Errorf("failed to write client %d: %w", snapshot.Client, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

func writeCSVFile(path string, snapshots []ledger.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteCSV(file, snapshots); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// Row renders one snapshot as output cells.
func Row(snapshot ledger.Snapshot) []string {
	return []string{
		strconv.FormatUint(uint64(snapshot.Client), 10),
		snapshot.Available.StringFixed(Precision),
		snapshot.Held.StringFixed(Precision),
		snapshot.Total.StringFixed(Precision),
		strconv.FormatBool(snapshot.Locked),
	}
}
