// =============================================================================
// Payments Ledger - Validation Module
// =============================================================================
//
// This module turns the raw string cells of an input row into a typed
// Transaction. It is shared by the CSV and XLSX input adapters so both apply
// exactly the same rules:
//   - Every cell is trimmed before parsing
//   - An empty numeric cell defaults to zero
//   - An unknown "type" is not an error (the engine skips it)
//   - Any other unparseable cell is fatal for the whole run
//
// REQUIRED COLUMNS:
//   type, client, tx, amount
//
// Columns are matched by name (trimmed, case-insensitive), so their order in
// the header does not matter. Extra columns are ignored.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

const (
	ColumnType   = "type"
	ColumnClient = "client"
	ColumnTx     = "tx"
	ColumnAmount = "amount"
)

// RequiredColumns lists the header names every input must carry.
var RequiredColumns = []string{ColumnType, ColumnClient, ColumnTx, ColumnAmount}

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError describes a row that cannot be turned into a Transaction.
// It always matches types.ErrMalformedRecord under errors.Is.
type ValidationError struct {
	// Row is the 1-based row number in the source, header included.
	Row int

	// Field is the column that failed to parse.
	Field string

	// Value is the trimmed cell content.
	Value string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("row %d, field '%s': invalid value '%s'", e.Row, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the ErrMalformedRecord kind and the parse error.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{types.ErrMalformedRecord}
	}
	return []error{types.ErrMalformedRecord, e.Err}
}

// =============================================================================
// HEADER MAPPING
// =============================================================================

// Columns holds the position of each required column in a row.
type Columns struct {
	Type   int
	Client int
	Tx     int
	Amount int
}

// ValidateHeader locates the required columns in a header row.
//
// RETURNS:
//   - The column positions.
//   - An error wrapping types.ErrMissingColumn and types.ErrMalformedRecord
//     if any required column is absent.
func ValidateHeader(header []string) (Columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Columns{}, fmt.Errorf("%w: %w: %s",
			types.ErrMalformedRecord, types.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return Columns{
		Type:   positions[ColumnType],
		Client: positions[ColumnClient],
		Tx:     positions[ColumnTx],
		Amount: positions[ColumnAmount],
	}, nil
}

// =============================================================================
// RECORD CONSTRUCTION
// =============================================================================

// BuildRecord parses one data row into a Transaction. Cells missing from the
// end of a short row are treated as empty.
func BuildRecord(row int, cells []string, columns Columns) (types.Transaction, error) {
	client, err := ParseClientID(cell(cells, columns.Client))
	if err != nil {
		return types.Transaction{}, fieldError(row, ColumnClient, cell(cells, columns.Client), err)
	}

	tx, err := ParseTxID(cell(cells, columns.Tx))
	if err != nil {
		return types.Transaction{}, fieldError(row, ColumnTx, cell(cells, columns.Tx), err)
	}

	amount, err := ParseAmount(cell(cells, columns.Amount))
	if err != nil {
		return types.Transaction{}, fieldError(row, ColumnAmount, cell(cells, columns.Amount), err)
	}

	return types.Transaction{
		Operation: types.ParseOperation(cell(cells, columns.Type)),
		Client:    client,
		Tx:        tx,
		Amount:    amount,
		Row:       row,
	}, nil
}

// cell returns the trimmed cell at index i, or "" past the end of the row.
func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func fieldError(row int, field, value string, err error) error {
	return &ValidationError{Row: row, Field: field, Value: value, Err: err}
}

// =============================================================================
// FIELD PARSERS
// =============================================================================

// ParseClientID parses an unsigned 16-bit client id. Empty defaults to 0.
func ParseClientID(value string) (types.ClientID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, err
	}
	return types.ClientID(id), nil
}

// ParseTxID parses an unsigned 32-bit transaction id. Empty defaults to 0.
func ParseTxID(value string) (types.TxID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return types.TxID(id), nil
}

// MaxFractionDigits is the finest amount precision accepted on input.
const MaxFractionDigits = 18

// maxAmount bounds the magnitude of an input amount (exclusive).
var maxAmount = decimal.New(1, 18)

// ErrAmountOutOfRange is returned for amounts that parse but exceed the
// supported precision or magnitude.
var ErrAmountOutOfRange = errors.New("amount out of range")

// ParseAmount parses a signed decimal amount. Empty defaults to zero.
//
// Amounts with more than MaxFractionDigits fractional digits, or whose
// magnitude reaches 1e18, are rejected with ErrAmountOutOfRange. The exponent
// is checked before any arithmetic, since rescaling an extreme exponent
// such as 1e-900000000 would not finish.
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	exp := amount.Exponent()
	if exp < -MaxFractionDigits || exp > 18 {
		return decimal.Zero, fmt.Errorf("%w: exponent %d", ErrAmountOutOfRange, exp)
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: magnitude", ErrAmountOutOfRange)
	}

	return amount, nil
}
