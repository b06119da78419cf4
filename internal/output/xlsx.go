package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payments-ledger/internal/ledger"
)

// WriteXLSX saves snapshots to a new workbook at path. Amounts are stored as
// text so the four fractional digits survive any spreadsheet formatting.
func WriteXLSX(path, sheetName string, snapshots []ledger.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Accounts"
	}

	// A new workbook starts with a single "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, sheetName, 1, Header); err != nil {
		return err
	}

	for i, snapshot := range snapshots {
		if err := setRow(f, sheetName, i+2, Row(snapshot)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, sheetName string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}

	values := make([]interface{}, len(cells))
	for i, value := range cells {
		values[i] = value
	}

	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	return nil
}
