package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/normalizer"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// Draft is a transaction candidate before validation. Typed fields are
// nil when the value is absent; the raw strings keep whatever the
// source carried so "missing" and "present but malformed" stay
// distinguishable.
type Draft struct {
	Description string
	Amount      *decimal.Decimal
	RawAmount   string
	Date        *time.Time
	RawDate     string
	Category    string
	AccountType string
}

// FromTransactions wraps already-extracted transactions as drafts so
// they pass through the same checks as externally supplied records.
func FromTransactions(txs []parser.Transaction) []Draft {
	drafts := make([]Draft, len(txs))
	for i, tx := range txs {
		amount := tx.Amount
		date := tx.Date
		drafts[i] = Draft{
			Description: tx.Description,
			Amount:      &amount,
			RawAmount:   amount.String(),
			Date:        &date,
			RawDate:     date.Format("2006-01-02"),
			Category:    tx.Category,
			AccountType: tx.AccountType,
		}
	}
	return drafts
}

// parseRawAmount coerces a raw amount string. Tests swap it to fault
// the coercion path.
var parseRawAmount = decimal.NewFromString

// Validate checks every draft and splits the batch into accepted
// transactions and per-record error strings. One bad record never
// blocks the rest; errors are 1-indexed "Row {n}: {reason}" lines.
func Validate(drafts []Draft) ([]parser.Transaction, []string) {
	valid := make([]parser.Transaction, 0, len(drafts))
	var errs []string
	for i, draft := range drafts {
		tx, reason := checkDraft(draft)
		if reason != "" {
			errs = append(errs, fmt.Sprintf("Row %d: %s", i+1, reason))
			continue
		}
		valid = append(valid, tx)
	}
	return valid, errs
}

// checkDraft applies the checks in a fixed order and reports the first
// failure. A panic while checking one record is reported as a generic
// validation error for that record only.
func checkDraft(draft Draft) (tx parser.Transaction, reason string) {
	defer func() {
		if r := recover(); r != nil {
			reason = fmt.Sprintf("Validation error - %v", r)
		}
	}()

	if strings.TrimSpace(draft.Description) == "" {
		return tx, "Missing description"
	}
	if draft.Amount == nil && strings.TrimSpace(draft.RawAmount) == "" {
		return tx, "Missing amount"
	}
	if draft.Date == nil && strings.TrimSpace(draft.RawDate) == "" {
		return tx, "Missing transaction date"
	}

	amount := decimal.Decimal{}
	if draft.Amount != nil {
		amount = *draft.Amount
	} else {
		parsed, err := parseRawAmount(strings.TrimSpace(draft.RawAmount))
		if err != nil {
			return tx, "Invalid amount format"
		}
		amount = parsed
	}

	var date time.Time
	if draft.Date != nil && !draft.Date.IsZero() {
		date = *draft.Date
	} else {
		parsed, ok := normalizer.ParseDate(draft.RawDate)
		if !ok {
			return tx, "Invalid date format"
		}
		date = parsed
	}

	accountType := draft.AccountType
	if accountType == "" {
		accountType = parser.DefaultAccountType
	}

	return parser.Transaction{
		Description: strings.TrimSpace(draft.Description),
		Amount:      amount,
		Date:        date,
		Category:    draft.Category,
		AccountType: accountType,
	}, ""
}
