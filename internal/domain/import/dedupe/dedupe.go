package dedupe

import (
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// DuplicateScore is the confidence assigned to every flagged pair. The
// rule is binary, so the score is a constant rather than a computed
// similarity.
const DuplicateScore = 0.95

// similarityThreshold is the minimum Levenshtein ratio for two
// descriptions to land in the same group.
const similarityThreshold = 0.8

var amountEpsilon = decimal.RequireFromString("0.01")

// Candidate is one advisory duplicate pair. Nothing is removed from
// the batch; callers decide what to do with the flags.
type Candidate struct {
	First  parser.Transaction
	Second parser.Transaction
	Score  float64
}

// FindDuplicates compares every unordered pair and flags likely
// duplicates: identical description, amounts within a cent, dates at
// most one day apart.
func FindDuplicates(txs []parser.Transaction) []Candidate {
	var out []Candidate
	for i := 0; i < len(txs); i++ {
		for j := i + 1; j < len(txs); j++ {
			if isLikelyDuplicate(txs[i], txs[j]) {
				out = append(out, Candidate{
					First:  txs[i],
					Second: txs[j],
					Score:  DuplicateScore,
				})
			}
		}
	}
	return out
}

func isLikelyDuplicate(a, b parser.Transaction) bool {
	if a.Description != b.Description {
		return false
	}
	if a.Amount.Sub(b.Amount).Abs().GreaterThanOrEqual(amountEpsilon) {
		return false
	}
	return daysApart(a.Date, b.Date) <= 1
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// GroupDescriptions clusters near-identical descriptions greedily: the
// first unassigned description anchors a group and claims everything
// similar to it. The outcome depends on input order by contract. Only
// groups with more than one member are returned, keyed by the anchor.
func GroupDescriptions(txs []parser.Transaction) map[string][]string {
	groups := make(map[string][]string)
	assigned := make(map[string]bool, len(txs))
	for _, anchor := range txs {
		if assigned[anchor.Description] {
			continue
		}
		assigned[anchor.Description] = true
		members := []string{anchor.Description}
		for _, other := range txs {
			if assigned[other.Description] {
				continue
			}
			if similarity(anchor.Description, other.Description) > similarityThreshold {
				assigned[other.Description] = true
				members = append(members, other.Description)
			}
		}
		if len(members) > 1 {
			groups[anchor.Description] = members
		}
	}
	return groups
}

// similarity is a normalized Levenshtein ratio over the lowercased
// strings, 1 meaning identical.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
