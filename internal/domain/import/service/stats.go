package service

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// Stats summarizes one processed batch. By the sign convention,
// positive amounts are outflows and negative amounts inflows; both
// totals are reported as magnitudes.
type Stats struct {
	Count              int
	DateStart          time.Time
	DateEnd            time.Time
	AmountMin          decimal.Decimal
	AmountMax          decimal.Decimal
	TotalOutflows      decimal.Decimal
	TotalInflows       decimal.Decimal
	UniqueDescriptions int
}

// ComputeStats aggregates a batch; nil for an empty one.
func ComputeStats(txs []parser.Transaction) *Stats {
	if len(txs) == 0 {
		return nil
	}

	stats := &Stats{
		Count:     len(txs),
		DateStart: txs[0].Date,
		DateEnd:   txs[0].Date,
		AmountMin: txs[0].Amount,
		AmountMax: txs[0].Amount,
	}
	descriptions := make(map[string]bool, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(stats.DateStart) {
			stats.DateStart = tx.Date
		}
		if tx.Date.After(stats.DateEnd) {
			stats.DateEnd = tx.Date
		}
		if tx.Amount.LessThan(stats.AmountMin) {
			stats.AmountMin = tx.Amount
		}
		if tx.Amount.GreaterThan(stats.AmountMax) {
			stats.AmountMax = tx.Amount
		}
		if tx.Amount.IsPositive() {
			stats.TotalOutflows = stats.TotalOutflows.Add(tx.Amount)
		} else if tx.Amount.IsNegative() {
			stats.TotalInflows = stats.TotalInflows.Add(tx.Amount.Abs())
		}
		descriptions[tx.Description] = true
	}
	stats.UniqueDescriptions = len(descriptions)
	return stats
}

// PreviewRow is one display-formatted transaction line.
type PreviewRow struct {
	Date        string
	Description string
	Amount      string
	Category    string
}

// Preview formats the first limit transactions for display, with
// amounts rendered as USD currency strings.
func Preview(txs []parser.Transaction, limit int) []PreviewRow {
	if limit <= 0 || limit > len(txs) {
		limit = len(txs)
	}
	rows := make([]PreviewRow, 0, limit)
	for _, tx := range txs[:limit] {
		cents := tx.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		rows = append(rows, PreviewRow{
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      money.New(cents, money.USD).Display(),
			Category:    tx.Category,
		})
	}
	return rows
}
