package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/normalizer"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/sniffer"
)

// DefaultAccountType is assigned to every extracted transaction; the
// statement itself never carries an account type.
const DefaultAccountType = "Bank Account"

// Transaction is one normalized statement line. Amount is signed with
// positive meaning an expense (outflow) and negative meaning income.
type Transaction struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	AccountType string
}

// FileKind tags the input format. Callers decide the kind up front;
// nothing here sniffs file contents to guess it.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindCSV
	KindExcel
	KindPDFText
)

func (k FileKind) String() string {
	switch k {
	case KindCSV:
		return "csv"
	case KindExcel:
		return "excel"
	case KindPDFText:
		return "pdf_text"
	}
	return "unknown"
}

// ErrEmptyFile is returned when the input holds no data at all.
var ErrEmptyFile = errors.New("file is empty")

// MissingColumnsError aborts table extraction when required columns
// cannot be found after standardization.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Missing, ", "))
}

// NoAmountColumnError aborts table extraction when neither an amount
// column nor a debit/credit pair is present.
type NoAmountColumnError struct{}

func (e *NoAmountColumnError) Error() string {
	return "no amount column or debit/credit pair found"
}

// Extractor turns raw statement bytes into transactions.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract dispatches on the declared file kind.
func (e *Extractor) Extract(kind FileKind, data []byte) ([]Transaction, error) {
	switch kind {
	case KindCSV:
		table, err := ReadCSV(data)
		if err != nil {
			return nil, err
		}
		return e.ExtractTable(table)
	case KindExcel:
		table, err := ReadExcel(data)
		if err != nil {
			return nil, err
		}
		return e.ExtractTable(table)
	case KindPDFText:
		return e.ExtractText(string(data)), nil
	}
	return nil, fmt.Errorf("unsupported file kind %q", kind)
}

// ExtractTable standardizes the table's columns and converts its rows.
// Rows that fail normalization are skipped with a log line; only a
// structurally unusable table aborts the whole batch.
func (e *Extractor) ExtractTable(table sniffer.Table) ([]Transaction, error) {
	format := sniffer.DetectFormat(table.Headers)
	std, _ := sniffer.StandardizeColumns(table)
	e.logger.Info("extracting table",
		slog.String("format", string(format)),
		slog.Int("rows", len(std.Rows)))

	var missing []string
	for _, required := range []string{sniffer.FieldDate, sniffer.FieldDescription} {
		if !std.HasColumn(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	hasAmount := std.HasColumn(sniffer.FieldAmount)
	hasPair := std.HasColumn(sniffer.FieldDebit) && std.HasColumn(sniffer.FieldCredit)
	if !hasAmount && !hasPair {
		return nil, &NoAmountColumnError{}
	}
	hasCategory := std.HasColumn(sniffer.FieldCategory)

	txs := make([]Transaction, 0, len(std.Rows))
	for i, row := range std.Rows {
		rowNum := i + 1

		date, ok := normalizer.ParseDate(row[sniffer.FieldDate])
		if !ok {
			e.logger.Warn("skipping row: unparseable date",
				slog.Int("row", rowNum), slog.String("value", row[sniffer.FieldDate]))
			continue
		}

		var amount decimal.Decimal
		if hasAmount {
			amount, ok = normalizer.ParseAmount(row[sniffer.FieldAmount])
		} else {
			amount, ok = synthesizeAmount(row)
		}
		if !ok {
			e.logger.Warn("skipping row: unparseable amount", slog.Int("row", rowNum))
			continue
		}

		desc, ok := normalizer.CleanDescription(row[sniffer.FieldDescription])
		if !ok {
			e.logger.Warn("skipping row: missing description", slog.Int("row", rowNum))
			continue
		}

		tx := Transaction{
			Description: desc,
			Amount:      amount,
			Date:        date,
			AccountType: DefaultAccountType,
		}
		if hasCategory {
			tx.Category = strings.TrimSpace(row[sniffer.FieldCategory])
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// synthesizeAmount computes credit minus debit for statements that
// split the amount over two columns. Blank cells count as zero; a
// non-blank cell that fails to parse fails the row.
func synthesizeAmount(row map[string]string) (decimal.Decimal, bool) {
	debit := decimal.Zero
	credit := decimal.Zero
	if raw := strings.TrimSpace(row[sniffer.FieldDebit]); !normalizer.IsPlaceholder(raw) {
		d, ok := normalizer.ParseAmount(raw)
		if !ok {
			return decimal.Decimal{}, false
		}
		debit = d
	}
	if raw := strings.TrimSpace(row[sniffer.FieldCredit]); !normalizer.IsPlaceholder(raw) {
		c, ok := normalizer.ParseAmount(raw)
		if !ok {
			return decimal.Decimal{}, false
		}
		credit = c
	}
	return credit.Sub(debit), true
}
