package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/sniffer"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvMu serializes access to gocsv's package-global reader factory so
// concurrent reads with different sniffed delimiters cannot see each
// other's configuration.
var csvMu sync.Mutex

// ReadCSV parses CSV bytes into a Table. The delimiter is sniffed from
// the first line; headers arrive with unknown names, so rows are read
// as header-keyed maps rather than into a fixed struct.
func ReadCSV(data []byte) (sniffer.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return sniffer.Table{}, ErrEmptyFile
	}

	delimiter := detectDelimiter(firstLine(data))
	newReader := func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delimiter
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		r.FieldsPerRecord = -1
		return r
	}
	csvMu.Lock()
	gocsv.SetCSVReader(newReader)
	rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
	csvMu.Unlock()
	if err != nil {
		return sniffer.Table{}, fmt.Errorf("parsing csv: %w", err)
	}

	// CSVToMaps loses header order, so read the header row again.
	headers, err := newReader(bytes.NewReader(data)).Read()
	if err != nil {
		return sniffer.Table{}, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := sniffer.Table{
		Headers: headers,
		Rows:    make([]map[string]string, len(rows)),
	}
	for i, row := range rows {
		trimmed := make(map[string]string, len(row))
		for key, val := range row {
			trimmed[strings.TrimSpace(key)] = val
		}
		table.Rows[i] = trimmed
	}
	return table, nil
}

func firstLine(data []byte) string {
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		data = data[:idx]
	}
	return strings.TrimRight(string(data), "\r")
}

// detectDelimiter picks the candidate that splits the header row into
// the most fields. Comma wins ties and is the fallback.
func detectDelimiter(header string) rune {
	best := ','
	bestCount := strings.Count(header, ",")
	for _, cand := range []rune{';', '\t', '|'} {
		if n := strings.Count(header, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}
