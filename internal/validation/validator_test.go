package validation

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/payments-ledger/internal/types"
)

func TestValidateHeader(t *testing.T) {
	columns, err := ValidateHeader([]string{" Amount", "tx ", "TYPE", "note", "client"})
	require.NoError(t, err)
	assert.Equal(t, Columns{Type: 2, Client: 4, Tx: 1, Amount: 0}, columns)
}

func TestValidateHeader_ByteOrderMark(t *testing.T) {
	columns, err := ValidateHeader([]string{"\ufefftype", "client", "tx", "amount"})
	require.NoError(t, err)
	assert.Equal(t, 0, columns.Type)
}

func TestValidateHeader_MissingColumn(t *testing.T) {
	_, err := ValidateHeader([]string{"type", "client", "amount"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMissingColumn)
	assert.ErrorIs(t, err, types.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "tx")
}

func TestBuildRecord(t *testing.T) {
	columns := Columns{Type: 0, Client: 1, Tx: 2, Amount: 3}

	record, err := BuildRecord(2, []string{" deposit ", " 1", "7 ", " 1.2345 "}, columns)
	require.NoError(t, err)
	assert.Equal(t, types.OperationDeposit, record.Operation)
	assert.EqualValues(t, 1, record.Client)
	assert.EqualValues(t, 7, record.Tx)
	assert.Equal(t, "1.2345", record.Amount.String())
	assert.Equal(t, 2, record.Row)
}

func TestBuildRecord_ShortRowAndEmptyFieldsDefaultToZero(t *testing.T) {
	columns := Columns{Type: 0, Client: 1, Tx: 2, Amount: 3}

	record, err := BuildRecord(3, []string{"dispute", "", "4"}, columns)
	require.NoError(t, err)
	assert.Equal(t, types.OperationDispute, record.Operation)
	assert.EqualValues(t, 0, record.Client)
	assert.EqualValues(t, 4, record.Tx)
	assert.True(t, record.Amount.IsZero())
}

func TestBuildRecord_UnknownTypeIsNotAnError(t *testing.T) {
	columns := Columns{Type: 0, Client: 1, Tx: 2, Amount: 3}

	record, err := BuildRecord(2, []string{"transfer", "1", "1", "1"}, columns)
	require.NoError(t, err)
	assert.Equal(t, types.OperationUnknown, record.Operation)
}

func TestBuildRecord_Malformed(t *testing.T) {
	columns := Columns{Type: 0, Client: 1, Tx: 2, Amount: 3}

	tests := []struct {
		name  string
		cells []string
		field string
	}{
		{"client not a number", []string{"deposit", "abc", "1", "1"}, ColumnClient},
		{"client overflows u16", []string{"deposit", "65536", "1", "1"}, ColumnClient},
		{"negative client", []string{"deposit", "-1", "1", "1"}, ColumnClient},
		{"tx overflows u32", []string{"deposit", "1", "4294967296", "1"}, ColumnTx},
		{"amount not a number", []string{"deposit", "1", "1", "1.0.0"}, ColumnAmount},
		{"amount exponent too small", []string{"deposit", "1", "1", "1e-900000000"}, ColumnAmount},
		{"amount exponent too large", []string{"deposit", "1", "1", "1e900000000"}, ColumnAmount},
		{"amount too many fraction digits", []string{"deposit", "1", "1", "0.0000000000000000001"}, ColumnAmount},
		{"amount too large", []string{"deposit", "1", "1", "1000000000000000000"}, ColumnAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRecord(5, tt.cells, columns)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrMalformedRecord)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, 5, validationErr.Row)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestParseAmount_Range(t *testing.T) {
	amount, err := ParseAmount("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "0.000000000000000001", amount.String())

	amount, err = ParseAmount("-999999999999999999.5")
	require.NoError(t, err)
	assert.True(t, amount.IsNegative())

	amount, err = ParseAmount("1e3")
	require.NoError(t, err)
	assert.Equal(t, "1000", amount.String())

	_, err = ParseAmount("1e-19")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = ParseAmount("-1e18")
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestParseFieldLimits(t *testing.T) {
	client, err := ParseClientID("65535")
	require.NoError(t, err)
	assert.EqualValues(t, 65535, client)

	tx, err := ParseTxID(strconv.FormatUint(4294967295, 10))
	require.NoError(t, err)
	assert.EqualValues(t, uint32(4294967295), tx)

	amount, err := ParseAmount(" -2.5 ")
	require.NoError(t, err)
	assert.Equal(t, "-2.5", amount.String())
}
