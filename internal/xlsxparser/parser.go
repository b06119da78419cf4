// =============================================================================
// Payments Ledger - XLSX Parser
// =============================================================================
//
// This module reads transaction records from an Excel workbook. The sheet
// layout is the same as the CSV layout: one header row naming the columns,
// then one transaction per row.
//
//   | Column A   | Column B | Column C | Column D |
//   |------------|----------|----------|----------|
//   | type       | client   | tx       | amount   |
//   | deposit    | 1        | 1        | 1.0      |
//   | dispute    | 1        | 1        |          |
//
// Cell values are read raw (no number formatting) and go through the same
// validation rules as CSV fields.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payments-ledger/internal/types"
	"github.com/ginjaninja78/payments-ledger/internal/validation"
)

// Parse reads every transaction record from a workbook sheet.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - sheetName: The sheet to read. Empty reads the first sheet.
//
// RETURNS:
//   - The records in row order.
//   - An error if the workbook cannot be opened or any row is malformed.
//     A sheet without data rows yields types.ErrEmptyInput.
func Parse(filePath, sheetName string) ([]types.Transaction, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return ParseFile(f, sheetName)
}

// ParseFile reads every transaction record from a sheet of an open workbook.
func ParseFile(f *excelize.File, sheetName string) ([]types.Transaction, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet '%s': %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s': %w", sheetName, types.ErrEmptyInput)
	}

	columns, err := validation.ValidateHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet '%s': %w", sheetName, err)
	}

	records := make([]types.Transaction, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		if isRowEmpty(row) {
			continue
		}

		record, err := validation.BuildRecord(i+1, row, columns)
		if err != nil {
			return nil, fmt.Errorf("sheet '%s': %w", sheetName, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("sheet '%s': %w", sheetName, types.ErrEmptyInput)
	}

	return records, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
