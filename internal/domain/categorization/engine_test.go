package categorization

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCategories = []string{
	"Groceries", "Housing", "Transportation", "Entertainment", "Healthcare",
	"Shopping", "Utilities", "Restaurants", "Gas", "Insurance", "Education",
	"Travel", "Investments", "Subscriptions", "Income", "Other", "ATM/Cash",
	"Fees", "Personal Care", "Gifts", "Charity", "Home Improvement",
	"Pet Care", "Professional Services", "Taxes",
}

func expense(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEngineCategorize(t *testing.T) {
	engine := NewEngine(DefaultRules(), allCategories)
	ctx := context.Background()

	tests := []struct {
		name        string
		description string
		amount      string
		want        string
	}{
		{"keyword hit", "STARBUCKS STORE #123", "4.50", "Restaurants"},
		{"case insensitive", "starbucks store", "4.50", "Restaurants"},
		{"groceries", "WHOLE FOODS MARKET", "82.10", "Groceries"},
		{"negative amount is income", "WHOLE FOODS REFUND", "-12.00", "Income"},
		{"no match falls back to other", "ZZZZZ UNKNOWN MERCHANT", "9.99", "Other"},
		{"fees", "MONTHLY FEE", "12.00", "Fees"},
		{"atm", "ATM WITHDRAWAL MAIN ST", "60.00", "ATM/Cash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Categorize(ctx, tt.description, expense(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineSpecificKeywordWins(t *testing.T) {
	engine := NewEngine(DefaultRules(), allCategories)

	got, err := engine.Categorize(context.Background(), "UBER EATS ORDER", expense("23.40"))
	require.NoError(t, err)
	assert.Equal(t, "Restaurants", got)

	got, err = engine.Categorize(context.Background(), "UBER TRIP SF", expense("18.00"))
	require.NoError(t, err)
	assert.Equal(t, "Transportation", got)
}

func TestEngineFuzzyFallback(t *testing.T) {
	engine := NewEngine(DefaultRules(), allCategories)

	// One dropped letter still lands on the keyword's category.
	got, err := engine.Categorize(context.Background(), "STARBUCS 0442", expense("5.10"))
	require.NoError(t, err)
	assert.Equal(t, "Restaurants", got)
}

func TestEngineClampsToAllowedCategories(t *testing.T) {
	rules := []Rule{{Keyword: "ACME", Category: "Made Up"}}
	engine := NewEngine(rules, []string{"Other", "Income"})

	got, err := engine.Categorize(context.Background(), "ACME SUPPLIES", expense("10.00"))
	require.NoError(t, err)
	assert.Equal(t, "Other", got)
}
