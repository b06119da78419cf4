package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payments-ledger/internal/config"
	"github.com/ginjaninja78/payments-ledger/internal/types"
	"github.com/ginjaninja78/payments-ledger/internal/validation"
)

const transactions = `type,client,tx,amount
deposit,3,1,5.0
deposit,1,2,2.0
dispute,3,1,
chargeback,3,1,
withdrawal,1,3,9.0
dispute,1,2,
transfer,2,4,1.0
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	path := writeInput(t, "tx.csv", transactions)

	result, err := New(path, nil, nil).Run()
	require.NoError(t, err)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
	assert.Equal(t, path, result.FilePath)

	require.Len(t, result.Accounts, 3)
	assert.EqualValues(t, 3, result.Accounts[0].Client)
	assert.True(t, result.Accounts[0].Locked)
	assert.Equal(t, "0.0000", result.Accounts[0].Total.StringFixed(4))

	assert.EqualValues(t, 1, result.Accounts[1].Client)
	assert.Equal(t, "0.0000", result.Accounts[1].Available.StringFixed(4))
	assert.Equal(t, "2.0000", result.Accounts[1].Held.StringFixed(4))

	stats := result.Stats
	assert.Equal(t, 7, stats.RecordsProcessed)
	assert.Equal(t, 3, stats.Clients)
	assert.Equal(t, []types.ClientID{3}, stats.LockedClients)
	assert.Equal(t, 1, stats.OpenDisputes)
	assert.Equal(t, 2, stats.Applied["deposit"])
	assert.Equal(t, 2, stats.Applied["dispute"])
	assert.Equal(t, 1, stats.Applied["chargeback"])
	assert.Equal(t, 1, stats.Rejected["insufficient_funds"])
	assert.Equal(t, 1, stats.Rejected["unknown_operation"])
	assert.Equal(t, 2, stats.RejectedTotal)
}

func TestRun_SortByClient(t *testing.T) {
	path := writeInput(t, "tx.csv", transactions)

	cfg := config.Default()
	cfg.Output.SortByClient = true

	result, err := New(path, cfg, nil).Run()
	require.NoError(t, err)

	var clients []types.ClientID
	for _, account := range result.Accounts {
		clients = append(clients, account.Client)
	}
	assert.Equal(t, []types.ClientID{1, 2, 3}, clients)
}

func TestRun_Delimiter(t *testing.T) {
	path := writeInput(t, "tx.csv", "type;client;tx;amount\ndeposit;1;1;4\n")

	cfg := config.Default()
	cfg.Input.Delimiter = ";"

	result, err := New(path, cfg, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "4.0000", result.Accounts[0].Total.StringFixed(4))
}

func TestRun_XLSXInput(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"type", "client", "tx", "amount"},
		{"deposit", 1, 1, 5},
		{"dispute", 1, 1},
		{"resolve", 1, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}
	path := filepath.Join(t.TempDir(), "tx.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := New(path, nil, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "5.0000", result.Accounts[0].Available.StringFixed(4))
	assert.Equal(t, "0.0000", result.Accounts[0].Held.StringFixed(4))
	assert.False(t, result.Accounts[0].Locked)
}

func TestRun_HeaderOnly(t *testing.T) {
	path := writeInput(t, "tx.csv", "type,client,tx,amount\n")

	result, err := New(path, nil, nil).Run()
	require.ErrorIs(t, err, types.ErrEmptyInput)
	assert.Nil(t, result)
}

func TestRun_Malformed(t *testing.T) {
	path := writeInput(t, "tx.csv", "type,client,tx,amount\ndeposit,1,1,one\n")

	result, err := New(path, nil, nil).Run()
	require.ErrorIs(t, err, types.ErrMalformedRecord)
	assert.Nil(t, result)
}

func TestRun_ExtremeAmountExponentIsMalformed(t *testing.T) {
	path := writeInput(t, "tx.csv", "type,client,tx,amount\ndeposit,1,1,1e-900000000\ndeposit,1,2,1\n")

	done := make(chan error, 1)
	go func() {
		_, err := New(path, nil, nil).Run()
		done <- err
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, types.ErrMalformedRecord)
		assert.ErrorIs(t, err, validation.ErrAmountOutOfRange)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish on a two-row input")
	}
}
