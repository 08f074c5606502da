// Package categorization assigns spending categories to transaction
// descriptions with keyword matching and a fuzzy fallback.
package categorization

import (
	"context"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
)

// Rule binds one uppercase keyword to a category. Rule order encodes
// specificity: "UBER EATS" must sit before "UBER" so the more specific
// keyword wins when both match.
type Rule struct {
	Keyword  string
	Category string
}

// Engine matches descriptions against a fixed rule set. The keyword
// pass uses an Aho-Corasick matcher, one scan regardless of how many
// rules are loaded; a fuzzy pass catches misspelled merchant names.
type Engine struct {
	rules   []Rule
	matcher *ahocorasick.Matcher
	allowed map[string]bool
}

// NewEngine builds an engine from the given rules and the set of
// category labels it is allowed to emit. Labels outside the set are
// reported as "Other".
func NewEngine(rules []Rule, categories []string) *Engine {
	keywords := make([]string, len(rules))
	for i, r := range rules {
		keywords[i] = strings.ToUpper(r.Keyword)
	}
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	return &Engine{
		rules:   rules,
		matcher: ahocorasick.NewStringMatcher(keywords),
		allowed: allowed,
	}
}

// Categorize labels a single transaction. Negative amounts are income
// by the sign convention (positive = expense); everything else runs
// through the keyword and fuzzy passes, falling back to "Other".
func (e *Engine) Categorize(_ context.Context, description string, amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return e.clamp("Income"), nil
	}

	upper := strings.ToUpper(description)
	if hits := e.matcher.Match([]byte(upper)); len(hits) > 0 {
		best := hits[0]
		for _, idx := range hits[1:] {
			if idx < best {
				best = idx
			}
		}
		return e.clamp(e.rules[best].Category), nil
	}

	if category, ok := e.fuzzyMatch(upper); ok {
		return e.clamp(category), nil
	}
	return "Other", nil
}

// fuzzyMatch tolerates a one-character misspelling of a keyword in any
// description token. Multi-word keywords are skipped; they never fit a
// single token.
func (e *Engine) fuzzyMatch(upper string) (string, bool) {
	for _, token := range strings.Fields(upper) {
		if len(token) < 4 {
			continue
		}
		for _, r := range e.rules {
			keyword := strings.ToUpper(r.Keyword)
			if strings.ContainsRune(keyword, ' ') || len(keyword) < 4 {
				continue
			}
			if fuzzy.LevenshteinDistance(keyword, token) <= 1 {
				return r.Category, true
			}
		}
	}
	return "", false
}

func (e *Engine) clamp(category string) string {
	if len(e.allowed) == 0 || e.allowed[category] {
		return category
	}
	return "Other"
}
