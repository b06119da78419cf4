package types

import "errors"

// Error kinds that abort a run. Anything the engine rejects for business
// reasons (locked account, insufficient funds, duplicate dispute) is not an
// error and never surfaces here.
var (
	// ErrFileNotFound is returned by the pre-flight check when the input path
	// does not exist.
	ErrFileNotFound = errors.New("input file not found")

	// ErrMalformedRecord marks a row that cannot be parsed into a Transaction.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingColumn marks a header without one of the required columns.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyInput is returned when the input holds no transaction records.
	ErrEmptyInput = errors.New("input contains no transaction records")
)
