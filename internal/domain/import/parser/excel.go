package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/sniffer"
)

// preferredSheets are tried by name before falling back to the first
// sheet in the workbook.
var preferredSheets = []string{"transactions", "statement", "data", "sheet1"}

// ReadExcel parses an xlsx workbook into a Table. The first row of the
// chosen sheet is the header row; short rows are padded with blanks so
// every row keys the full header set.
func ReadExcel(data []byte) (sniffer.Table, error) {
	if len(data) == 0 {
		return sniffer.Table{}, ErrEmptyFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return sniffer.Table{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f)
	if sheet == "" {
		return sniffer.Table{}, ErrEmptyFile
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return sniffer.Table{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return sniffer.Table{}, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := sniffer.Table{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		cells := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				cells[h] = row[i]
			} else {
				cells[h] = ""
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func pickSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, want := range preferredSheets {
		for _, name := range sheets {
			if strings.EqualFold(name, want) {
				return name
			}
		}
	}
	return sheets[0]
}
