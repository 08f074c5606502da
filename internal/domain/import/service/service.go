// Package service orchestrates the statement import pipeline: upload
// validation, extraction, validation, duplicate detection, optional
// categorization and persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/dedupe"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/repository"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/validator"
)

// DefaultMaxFileSize caps uploads at 10 MiB.
const DefaultMaxFileSize = 10 << 20

// DefaultErrorPreviewLimit is how many row errors surface to the user.
const DefaultErrorPreviewLimit = 5

// DefaultCategories returns the built-in category labels.
func DefaultCategories() []string {
	return []string{
		"Groceries", "Housing", "Transportation", "Entertainment",
		"Healthcare", "Shopping", "Utilities", "Restaurants", "Gas",
		"Insurance", "Education", "Travel", "Investments",
		"Subscriptions", "Income", "Other", "ATM/Cash", "Fees",
		"Personal Care", "Gifts", "Charity", "Home Improvement",
		"Pet Care", "Professional Services", "Taxes",
	}
}

// mimeKinds maps accepted upload MIME types to file kinds. Legacy .xls
// uploads arrive as application/vnd.ms-excel but carry CSV content in
// practice, so they route through the CSV reader.
var mimeKinds = map[string]parser.FileKind{
	"text/csv":                 parser.KindCSV,
	"application/vnd.ms-excel": parser.KindCSV,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": parser.KindExcel,
	"application/pdf": parser.KindPDFText,
}

// Categorizer labels a single transaction. Implementations decide
// their own matching strategy; the pipeline only clamps the result to
// the configured category list.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error)
}

// Config carries the pipeline's tunables. Zero values fall back to the
// package defaults.
type Config struct {
	Categories        []string
	MaxFileSize       int64
	ErrorPreviewLimit int
}

func (c Config) withDefaults() Config {
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.ErrorPreviewLimit <= 0 {
		c.ErrorPreviewLimit = DefaultErrorPreviewLimit
	}
	return c
}

// Service runs the import pipeline. It is stateless between calls;
// collaborators are optional and skipped when absent.
type Service struct {
	cfg         Config
	extractor   *parser.Extractor
	store       repository.TransactionStore
	categorizer Categorizer
	logger      *slog.Logger
	allowed     map[string]bool
}

func New(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	allowed := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		allowed[c] = true
	}
	return &Service{
		cfg:       cfg,
		extractor: parser.NewExtractor(logger),
		logger:    logger,
		allowed:   allowed,
	}
}

// WithStore attaches a transaction store; processed batches are then
// persisted before the result returns.
func (s *Service) WithStore(store repository.TransactionStore) *Service {
	s.store = store
	return s
}

// WithCategorizer attaches a categorizer for transactions that arrive
// without a category.
func (s *Service) WithCategorizer(c Categorizer) *Service {
	s.categorizer = c
	return s
}

// ValidateUpload checks the declared size and MIME type before any
// bytes are read and maps the MIME type to a file kind.
func (s *Service) ValidateUpload(size int64, mimeType string) (parser.FileKind, error) {
	if size <= 0 {
		return parser.KindUnknown, errors.New("file is empty")
	}
	if size > s.cfg.MaxFileSize {
		return parser.KindUnknown, fmt.Errorf("file size %d exceeds limit of %d bytes", size, s.cfg.MaxFileSize)
	}
	kind, ok := mimeKinds[mimeType]
	if !ok {
		return parser.KindUnknown, fmt.Errorf("unsupported file type %q", mimeType)
	}
	return kind, nil
}

// Result is the outcome of one processed statement. Duplicates and
// groups are advisory; nothing is removed from Transactions. When a
// table is structurally unusable, Diagnostic holds the reason and the
// other fields stay empty.
type Result struct {
	Transactions []parser.Transaction
	Errors       []string
	Duplicates   []dedupe.Candidate
	Groups       map[string][]string
	Stats        *Stats
	Diagnostic   string
	Persisted    []repository.Record
}

// Process runs one statement through the pipeline. Structural failures
// in the input (missing columns, no amount source, empty file) come
// back as a diagnostic Result, not an error; the error return is for
// collaborator failures only.
func (s *Service) Process(ctx context.Context, userID uuid.UUID, kind parser.FileKind, data []byte) (*Result, error) {
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("file size %d exceeds limit of %d bytes", len(data), s.cfg.MaxFileSize)
	}

	extracted, err := s.extractor.Extract(kind, data)
	if err != nil {
		if kind == parser.KindUnknown {
			return nil, err
		}
		s.logger.Warn("extraction aborted", slog.String("reason", err.Error()))
		return &Result{Diagnostic: err.Error()}, nil
	}

	txs, rowErrs := validator.Validate(validator.FromTransactions(extracted))

	if s.categorizer != nil {
		s.categorize(ctx, txs)
	}

	result := &Result{
		Transactions: txs,
		Errors:       rowErrs,
		Duplicates:   dedupe.FindDuplicates(txs),
		Groups:       dedupe.GroupDescriptions(txs),
		Stats:        ComputeStats(txs),
	}

	if s.store != nil && len(txs) > 0 {
		persisted, err := s.store.SaveBatch(ctx, userID, txs)
		if err != nil {
			return nil, fmt.Errorf("persisting batch: %w", err)
		}
		result.Persisted = persisted
	}

	s.logger.Info("statement processed",
		slog.String("kind", kind.String()),
		slog.Int("transactions", len(txs)),
		slog.Int("row_errors", len(rowErrs)),
		slog.Int("duplicate_pairs", len(result.Duplicates)))
	return result, nil
}

// categorize fills in missing categories. A label already present on
// the transaction is carried as-is; engine output is clamped to the
// configured list.
func (s *Service) categorize(ctx context.Context, txs []parser.Transaction) {
	for i := range txs {
		if txs[i].Category != "" {
			continue
		}
		label, err := s.categorizer.Categorize(ctx, txs[i].Description, txs[i].Amount)
		if err != nil {
			s.logger.Warn("categorization failed",
				slog.String("description", txs[i].Description),
				slog.Any("error", err))
			txs[i].Category = "Other"
			continue
		}
		if !s.allowed[label] {
			label = "Other"
		}
		txs[i].Category = label
	}
}

// ErrorPreview caps the row error list for display.
func (s *Service) ErrorPreview(errs []string) []string {
	if len(errs) <= s.cfg.ErrorPreviewLimit {
		return errs
	}
	return errs[:s.cfg.ErrorPreviewLimit]
}
