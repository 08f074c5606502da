package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/repository"
)

type stubCategorizer struct {
	label string
	err   error
}

func (c stubCategorizer) Categorize(context.Context, string, decimal.Decimal) (string, error) {
	return c.label, c.err
}

func newTestService(cfg Config) *Service {
	return New(cfg, slog.New(slog.DiscardHandler))
}

const sampleCSV = `Date,Description,Amount
2024-01-05,STARBUCKS STORE 001,4.50
2024-01-05,STARBUCKS STORE 001,4.50
2024-01-06,WHOLE FOODS MARKET,82.10
2024-01-07,PAYCHECK,-2500.00
`

func TestProcessCSVEndToEnd(t *testing.T) {
	svc := newTestService(Config{}).WithStore(repository.NewMemoryStore())
	userID := uuid.New()

	result, err := svc.Process(context.Background(), userID, parser.KindCSV, []byte(sampleCSV))
	require.NoError(t, err)

	assert.Empty(t, result.Diagnostic)
	assert.Len(t, result.Transactions, 4)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, 0.95, result.Duplicates[0].Score)

	require.NotNil(t, result.Stats)
	assert.Equal(t, 4, result.Stats.Count)
	assert.Equal(t, 3, result.Stats.UniqueDescriptions)
	assert.True(t, decimal.RequireFromString("91.1").Equal(result.Stats.TotalOutflows))
	assert.True(t, decimal.RequireFromString("2500").Equal(result.Stats.TotalInflows))

	require.Len(t, result.Persisted, 4)
	assert.Equal(t, userID, result.Persisted[0].UserID)
}

func TestProcessStructuralFailureIsDiagnostic(t *testing.T) {
	svc := newTestService(Config{})

	result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
		[]byte("Description,Amount\nCOFFEE,4.50\n"))

	require.NoError(t, err)
	assert.Contains(t, result.Diagnostic, "date")
	assert.Empty(t, result.Transactions)
	assert.Nil(t, result.Stats)
}

func TestProcessEmptyFileIsDiagnostic(t *testing.T) {
	svc := newTestService(Config{})

	result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV, []byte("  "))

	require.NoError(t, err)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestProcessOversizedFile(t *testing.T) {
	svc := newTestService(Config{MaxFileSize: 16})

	_, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
		[]byte(strings.Repeat("x", 17)))
	assert.Error(t, err)
}

func TestProcessCategorizes(t *testing.T) {
	t.Run("engine label applied", func(t *testing.T) {
		svc := newTestService(Config{}).WithCategorizer(stubCategorizer{label: "Groceries"})

		result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
			[]byte("Date,Description,Amount\n2024-01-05,SOMETHING,4.50\n"))
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Groceries", result.Transactions[0].Category)
	})

	t.Run("unknown label clamped to Other", func(t *testing.T) {
		svc := newTestService(Config{}).WithCategorizer(stubCategorizer{label: "Not A Category"})

		result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
			[]byte("Date,Description,Amount\n2024-01-05,SOMETHING,4.50\n"))
		require.NoError(t, err)
		assert.Equal(t, "Other", result.Transactions[0].Category)
	})

	t.Run("categorizer failure falls back to Other", func(t *testing.T) {
		svc := newTestService(Config{}).WithCategorizer(stubCategorizer{err: errors.New("model offline")})

		result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
			[]byte("Date,Description,Amount\n2024-01-05,SOMETHING,4.50\n"))
		require.NoError(t, err)
		assert.Equal(t, "Other", result.Transactions[0].Category)
	})

	t.Run("existing category carried verbatim", func(t *testing.T) {
		svc := newTestService(Config{}).WithCategorizer(stubCategorizer{label: "Groceries"})

		result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV,
			[]byte("Date,Description,Amount,Category\n2024-01-05,SOMETHING,4.50,Custom Label\n"))
		require.NoError(t, err)
		assert.Equal(t, "Custom Label", result.Transactions[0].Category)
	})
}

func TestValidateUpload(t *testing.T) {
	svc := newTestService(Config{})

	tests := []struct {
		name     string
		size     int64
		mime     string
		wantKind parser.FileKind
		wantErr  bool
	}{
		{"csv", 100, "text/csv", parser.KindCSV, false},
		{"legacy excel routed to csv", 100, "application/vnd.ms-excel", parser.KindCSV, false},
		{"xlsx", 100, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", parser.KindExcel, false},
		{"pdf", 100, "application/pdf", parser.KindPDFText, false},
		{"too large", DefaultMaxFileSize + 1, "text/csv", parser.KindUnknown, true},
		{"at the limit", DefaultMaxFileSize, "text/csv", parser.KindCSV, false},
		{"empty", 0, "text/csv", parser.KindUnknown, true},
		{"unsupported type", 100, "image/png", parser.KindUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := svc.ValidateUpload(tt.size, tt.mime)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestErrorPreview(t *testing.T) {
	svc := newTestService(Config{ErrorPreviewLimit: 5})

	var errs []string
	for i := 1; i <= 8; i++ {
		errs = append(errs, fmt.Sprintf("Row %d: Missing description", i))
	}

	preview := svc.ErrorPreview(errs)
	assert.Len(t, preview, 5)
	assert.Equal(t, errs[:5], preview)

	assert.Len(t, svc.ErrorPreview(errs[:3]), 3)
	assert.Empty(t, svc.ErrorPreview(nil))
}

func TestComputeStats(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		assert.Nil(t, ComputeStats(nil))
	})

	t.Run("aggregates", func(t *testing.T) {
		svc := newTestService(Config{})
		result, err := svc.Process(context.Background(), uuid.New(), parser.KindCSV, []byte(sampleCSV))
		require.NoError(t, err)

		stats := result.Stats
		require.NotNil(t, stats)
		assert.Equal(t, "2024-01-05", stats.DateStart.Format("2006-01-02"))
		assert.Equal(t, "2024-01-07", stats.DateEnd.Format("2006-01-02"))
		assert.True(t, decimal.RequireFromString("-2500").Equal(stats.AmountMin))
		assert.True(t, decimal.RequireFromString("82.1").Equal(stats.AmountMax))
	})
}

func TestPreview(t *testing.T) {
	txs := []parser.Transaction{
		{
			Description: "STARBUCKS",
			Amount:      decimal.RequireFromString("4.5"),
			Date:        mustDate(t, "2024-01-05"),
			Category:    "Restaurants",
		},
		{
			Description: "PAYCHECK",
			Amount:      decimal.RequireFromString("-2500"),
			Date:        mustDate(t, "2024-01-07"),
			Category:    "Income",
		},
	}

	rows := Preview(txs, 1)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-05", rows[0].Date)
	assert.Equal(t, "$4.50", rows[0].Amount)

	rows = Preview(txs, 10)
	require.Len(t, rows, 2)
	assert.Equal(t, "-$2,500.00", rows[1].Amount)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d.UTC()
}
