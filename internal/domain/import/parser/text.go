package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/normalizer"
)

// textPatterns match "date description amount" statement lines in text
// lifted out of PDFs. Every pattern runs over the whole text, so a line
// matched by two patterns yields two candidates; the duplicate detector
// downstream flags the copies. The slash pattern is listed twice and
// must stay that way: collapsing the list changes the emitted counts
// that callers reconcile against.
var textPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+(-?\$?[\d,]+\.?\d*)`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})\s+(.+?)\s+(-?\$?[\d,]+\.?\d*)`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+(-?\$?[\d,]+\.?\d*)`),
	regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2})\s+(.+?)\s+(-?\$?[\d,]+\.?\d*)`),
}

// ExtractText scans free-form statement text for transaction lines.
// Matches that fail normalization are dropped with a log line; there
// is no table-level failure mode for text input.
func (e *Extractor) ExtractText(text string) []Transaction {
	var txs []Transaction
	for _, pattern := range textPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			date, ok := normalizer.ParseDate(m[1])
			if !ok {
				e.logger.Warn("dropping text match: unparseable date", slog.String("value", m[1]))
				continue
			}
			amount, ok := normalizer.ParseAmount(m[3])
			if !ok {
				e.logger.Warn("dropping text match: unparseable amount", slog.String("value", m[3]))
				continue
			}
			desc, ok := normalizer.CleanDescription(m[2])
			if !ok {
				continue
			}
			txs = append(txs, Transaction{
				Description: strings.TrimSpace(desc),
				Amount:      amount,
				Date:        date,
				AccountType: DefaultAccountType,
			})
		}
	}
	return txs
}
