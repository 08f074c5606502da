package sniffer

import "strings"

// Canonical column names produced by StandardizeColumns.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldDebit       = "debit"
	FieldCredit      = "credit"
	FieldBalance     = "balance"
	FieldCategory    = "category"
)

// Table is a parsed tabular file: the ordered header row plus one map
// per data row, cells keyed by the current header name.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// HasColumn reports whether the table carries the named header.
func (t Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// FormatTag labels a recognized statement layout. The tag is
// informational; extraction never branches on it.
type FormatTag string

const (
	FormatChase      FormatTag = "chase"
	FormatBofA       FormatTag = "bofa"
	FormatWellsFargo FormatTag = "wells_fargo"
	FormatCiti       FormatTag = "citi"
	FormatGeneric    FormatTag = "generic"
	FormatUnknown    FormatTag = "unknown"
)

type formatRule struct {
	tag      FormatTag
	required []string
}

// formatRules is checked in order; more specific layouts sit before
// the generic catch-all.
var formatRules = []formatRule{
	{FormatChase, []string{"date", "description", "amount", "type", "balance"}},
	{FormatBofA, []string{"date", "description", "amount", "running_bal"}},
	{FormatWellsFargo, []string{"date", "amount", "description"}},
	{FormatCiti, []string{"date", "description", "debit", "credit"}},
	{FormatGeneric, []string{"date", "description", "amount"}},
}

// DetectFormat matches the header row against known bank layouts.
// Each required token must appear as a substring of at least one
// lower-trimmed header; the first fully satisfied rule wins.
func DetectFormat(headers []string) FormatTag {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, rule := range formatRules {
		if matchesAll(lowered, rule.required) {
			return rule.tag
		}
	}
	return FormatUnknown
}

func matchesAll(headers, required []string) bool {
	for _, want := range required {
		found := false
		for _, h := range headers {
			if strings.Contains(h, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// fieldAliases maps each canonical field to the header spellings that
// feed it, most common first.
var fieldAliases = map[string][]string{
	FieldDate:        {"date", "transaction_date", "trans_date", "posting_date", "post_date", "transaction date"},
	FieldDescription: {"description", "memo", "details", "transaction_details", "payee", "merchant"},
	FieldAmount:      {"amount", "transaction_amount", "trans_amount"},
	FieldDebit:       {"debit", "withdrawal", "out", "outgoing"},
	FieldCredit:      {"credit", "deposit", "in", "incoming"},
	FieldBalance:     {"balance", "running_balance", "account_balance", "running_bal"},
	FieldCategory:    {"category", "type", "transaction_type"},
}

// canonicalOrder keeps standardization deterministic across runs.
var canonicalOrder = []string{
	FieldDate, FieldDescription, FieldAmount,
	FieldDebit, FieldCredit, FieldBalance, FieldCategory,
}

// ColumnMapping records, per canonical field, the original header that
// was renamed to it.
type ColumnMapping map[string]string

// StandardizeColumns lowercases and trims every header, then renames
// the first alias hit per canonical field to the canonical name. At
// most one source column feeds each field; later aliases are left
// untouched. Aliases match on the lowered header with interior spaces
// folded to underscores, so "Posting Date" satisfies posting_date.
func StandardizeColumns(t Table) (Table, ColumnMapping) {
	lowered := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rename := make(map[string]string, len(canonicalOrder))
	mapping := make(ColumnMapping, len(canonicalOrder))
	claimed := make(map[int]bool, len(canonicalOrder))
	for _, field := range canonicalOrder {
		for _, alias := range fieldAliases[field] {
			idx := -1
			for i, h := range lowered {
				if claimed[i] {
					continue
				}
				if h == alias || strings.ReplaceAll(h, " ", "_") == alias {
					idx = i
					break
				}
			}
			if idx < 0 {
				continue
			}
			claimed[idx] = true
			rename[lowered[idx]] = field
			mapping[field] = t.Headers[idx]
			break
		}
	}

	out := Table{
		Headers: make([]string, len(t.Headers)),
		Rows:    make([]map[string]string, len(t.Rows)),
	}
	for i, h := range lowered {
		if canon, ok := rename[h]; ok {
			out.Headers[i] = canon
		} else {
			out.Headers[i] = h
		}
	}
	for i, row := range t.Rows {
		newRow := make(map[string]string, len(row))
		for key, val := range row {
			lk := strings.ToLower(strings.TrimSpace(key))
			if canon, ok := rename[lk]; ok {
				lk = canon
			}
			newRow[lk] = val
		}
		out.Rows[i] = newRow
	}
	return out, mapping
}
