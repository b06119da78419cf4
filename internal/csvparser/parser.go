// =============================================================================
// Payments Ledger - CSV Parser Module
// =============================================================================
//
// This module reads transaction records from delimited text. The expected
// layout is one header row followed by data rows:
//
//   type,       client, tx, amount
//   deposit,         1,  1,    1.0
//   dispute,         1,  1,
//
// FEATURES:
//   - Header columns matched by name, in any order
//   - Whitespace around every field is trimmed
//   - Short rows (e.g. no amount on a dispute) are padded with empty fields
//   - Blank lines are skipped
//   - Streaming reader so rows are parsed one at a time
//
// Any row that cannot be parsed aborts the whole read; there is no partial
// result.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/payments-ledger/internal/types"
	"github.com/ginjaninja78/payments-ledger/internal/validation"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads every transaction record from a CSV file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - comma: The field delimiter.
//
// RETURNS:
//   - The records in file order.
//   - An error if the file cannot be opened or any row is malformed.
//     A file with no data rows yields types.ErrEmptyInput.
func Parse(filePath string, comma rune) ([]types.Transaction, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, comma)
}

// ParseReader reads every transaction record from r.
func ParseReader(r io.Reader, comma rune) ([]types.Transaction, error) {
	parser, err := NewStreamingParser(r, comma)
	if err != nil {
		return nil, err
	}

	var records []types.Transaction
	for parser.Next() {
		records = append(records, parser.Record())
	}
	if err := parser.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read CSV: %w", types.ErrEmptyInput)
	}

	return records, nil
}

// configureReader configures the CSV reader for transaction files.
func configureReader(reader *csv.Reader, comma rune) {
	reader.Comma = comma

	// Dispute-family rows routinely omit the trailing amount column.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
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

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads one transaction record at a time.
//
// USAGE:
//   parser, err := NewStreamingParser(reader, ',')
//   if err != nil {
//       return err
//   }
//
//   for parser.Next() {
//       record := parser.Record()
//       // Process the record...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	reader  *csv.Reader
	columns validation.Columns
	current types.Transaction
	err     error
}

// NewStreamingParser reads the header row from r and returns a parser
// positioned on the first data row.
//
// RETURNS:
//   - types.ErrEmptyInput if r holds no header row.
//   - An error wrapping types.ErrMalformedRecord if the header lacks a
//     required column or cannot be read.
func NewStreamingParser(r io.Reader, comma rune) (*StreamingParser, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	configureReader(reader, comma)

	parser := &StreamingParser{reader: reader}

	if err := parser.readHeader(); err != nil {
		return nil, err
	}

	return parser, nil
}

// readHeader reads the header row and maps the required columns.
func (p *StreamingParser) readHeader() error {
	header, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read header: %w", types.ErrEmptyInput)
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w: %w", types.ErrMalformedRecord, err)
	}

	columns, err := validation.ValidateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.columns = columns
	return nil
}

// Next advances to the next record. It returns false at the end of input or
// on the first error, which is then available from Err.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		row, err := p.reader.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			p.err = fmt.Errorf("failed to read CSV: %w: %w", types.ErrMalformedRecord, err)
			return false
		}

		if isRowEmpty(row) {
			continue
		}

		line, _ := p.reader.FieldPos(0)

		record, err := validation.BuildRecord(line, row, p.columns)
		if err != nil {
			p.err = err
			return false
		}

		p.current = record
		return true
	}
}

// Record returns the record read by the last successful call to Next.
func (p *StreamingParser) Record() types.Transaction {
	return p.current
}

// Err returns the error that stopped Next, if any.
func (p *StreamingParser) Err() error {
	return p.err
}
