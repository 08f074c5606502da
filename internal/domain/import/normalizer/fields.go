package normalizer

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts is the priority-ordered list of calendar date layouts.
// US month-first layouts come before EU day-first, so an ambiguous
// value like 03/04/2024 parses as March 4. The numeric layouts are the
// non-padded forms, which accept both 3/4/2024 and 03/04/2024.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2/1/06",
	"1-2-2006",
	"1-2-06",
	"2-1-2006",
	"2-1-06",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// fallbackLayouts handle timestamped and dotted exports seen in the wild.
// They are tried only after every layout in dateLayouts has failed.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2.1.2006",
	"2006.1.2",
	"1/2/2006 15:04",
	"Jan 2 2006",
}

// currencyRunes strips currency symbols, thousands separators and
// interior whitespace before numeric parsing.
var currencyRunes = regexp.MustCompile(`[$€£¥₹,\s]`)

var multiSpace = regexp.MustCompile(`\s+`)

// IsPlaceholder reports whether a raw cell holds one of the stand-in
// values spreadsheet tools emit for missing data.
func IsPlaceholder(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "nan", "none", "null", "n/a":
		return true
	}
	return false
}

// ParseDate parses a raw date cell against the known layouts and
// returns the value as a midnight-UTC calendar date. The second
// return is false when no layout matches.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if IsPlaceholder(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a raw amount cell into a signed decimal. Currency
// symbols, commas and whitespace are stripped first; a parenthesized
// value is treated as negative, accounting style.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if IsPlaceholder(s) {
		return decimal.Decimal{}, false
	}
	s = currencyRunes.ReplaceAllString(s, "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// CleanDescription trims a raw description cell and collapses interior
// whitespace runs. Placeholder values are rejected.
func CleanDescription(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if IsPlaceholder(s) {
		return "", false
	}
	return multiSpace.ReplaceAllString(s, " "), true
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
