package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadExcel(t *testing.T) {
	data := buildWorkbook(t, "Transactions", [][]interface{}{
		{"Date", "Description", "Amount"},
		{"2024-01-05", "STARBUCKS", "4.50"},
		{"2024-01-06", "PAYCHECK", "-2500.00"},
	})

	table, err := ReadExcel(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "STARBUCKS", table.Rows[0]["Description"])
	assert.Equal(t, "-2500.00", table.Rows[1]["Amount"])
}

func TestReadExcelPadsShortRows(t *testing.T) {
	data := buildWorkbook(t, "Statement", [][]interface{}{
		{"Date", "Description", "Amount"},
		{"2024-01-05", "COFFEE"},
	})

	table, err := ReadExcel(data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["Amount"])
}

func TestReadExcelFallsBackToFirstSheet(t *testing.T) {
	data := buildWorkbook(t, "Exported", [][]interface{}{
		{"Date", "Description", "Amount"},
		{"2024-01-05", "COFFEE", "4.50"},
	})

	table, err := ReadExcel(data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
}

func TestReadExcelEmpty(t *testing.T) {
	_, err := ReadExcel(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestExtractExcelEndToEnd(t *testing.T) {
	e := testExtractor(t)
	data := buildWorkbook(t, "Transactions", [][]interface{}{
		{"Posting Date", "Memo", "Debit", "Credit"},
		{"01/05/2024", "GROCERIES", "52.10", ""},
		{"01/06/2024", "DEPOSIT", "", "2500.00"},
	})

	txs, err := e.Extract(KindExcel, data)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "GROCERIES", txs[0].Description)
	assert.True(t, txs[0].Amount.IsNegative())
	assert.True(t, txs[1].Amount.IsPositive())
}
