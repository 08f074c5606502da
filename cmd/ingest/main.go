// Command ingest runs a bank statement through the import pipeline and
// prints what would land in the ledger: parsed transactions, batch
// stats, duplicate advisories and the capped row-error preview.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcb03/ai-finance-advisor/internal/domain/categorization"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/repository"
	"github.com/jcb03/ai-finance-advisor/internal/domain/import/service"
	"github.com/jcb03/ai-finance-advisor/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		file       = flag.String("file", "", "statement file to ingest (required)")
		kindFlag   = flag.String("kind", "", "file kind: csv, excel or text (default: by extension)")
		categorize = flag.Bool("categorize", true, "assign categories with the keyword engine")
		persist    = flag.Bool("persist", false, "save the batch to the configured store")
		userFlag   = flag.String("user", "", "user id to persist under (default: random)")
		previewN   = flag.Int("preview", 10, "transactions to print")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	kind, err := resolveKind(*kindFlag, *file)
	if err != nil {
		return err
	}

	info, err := os.Stat(*file)
	if err != nil {
		return err
	}

	svc := service.New(service.Config{
		Categories:        cfg.Import.Categories,
		MaxFileSize:       cfg.Import.MaxFileSize,
		ErrorPreviewLimit: cfg.Import.ErrorPreviewLimit,
	}, logger)

	if _, err := svc.ValidateUpload(info.Size(), mimeTypeFor(kind)); err != nil {
		return err
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	if *categorize {
		categories := cfg.Import.Categories
		if len(categories) == 0 {
			categories = service.DefaultCategories()
		}
		svc.WithCategorizer(categorization.NewEngine(categorization.DefaultRules(), categories))
	}

	ctx := context.Background()
	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			return fmt.Errorf("parsing -user: %w", err)
		}
	}

	if *persist {
		store, cleanup, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		svc.WithStore(store)
	}

	result, err := svc.Process(ctx, userID, kind, data)
	if err != nil {
		return err
	}
	printResult(svc, result, *previewN)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func resolveKind(flagValue, path string) (parser.FileKind, error) {
	name := flagValue
	if name == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			name = "csv"
		case ".xlsx", ".xls":
			name = "excel"
		case ".txt", ".pdf":
			name = "text"
		}
	}
	switch name {
	case "csv":
		return parser.KindCSV, nil
	case "excel":
		return parser.KindExcel, nil
	case "text":
		return parser.KindPDFText, nil
	}
	return parser.KindUnknown, fmt.Errorf("cannot determine file kind for %q, pass -kind", path)
}

func mimeTypeFor(kind parser.FileKind) string {
	switch kind {
	case parser.KindExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case parser.KindPDFText:
		return "application/pdf"
	}
	return "text/csv"
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.TransactionStore, func(), error) {
	if !cfg.Database.Enabled {
		logger.Info("no database configured, persisting to memory store")
		return repository.NewMemoryStore(), func() {}, nil
	}
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return repository.NewPostgresStore(pool), pool.Close, nil
}

func printResult(svc *service.Service, result *service.Result, previewN int) {
	if result.Diagnostic != "" {
		fmt.Println("could not process statement:", result.Diagnostic)
		return
	}

	if stats := result.Stats; stats != nil {
		fmt.Printf("parsed %d transactions (%d unique descriptions)\n",
			stats.Count, stats.UniqueDescriptions)
		fmt.Printf("dates %s to %s\n",
			stats.DateStart.Format("2006-01-02"), stats.DateEnd.Format("2006-01-02"))
		fmt.Printf("outflows %s, inflows %s\n", stats.TotalOutflows, stats.TotalInflows)
	}

	for _, row := range service.Preview(result.Transactions, previewN) {
		fmt.Printf("  %s  %-40s %12s  %s\n", row.Date, row.Description, row.Amount, row.Category)
	}

	for _, dup := range result.Duplicates {
		fmt.Printf("possible duplicate (%.2f): %q on %s and %s\n",
			dup.Score, dup.First.Description,
			dup.First.Date.Format("2006-01-02"), dup.Second.Date.Format("2006-01-02"))
	}

	for anchor, members := range result.Groups {
		if len(members) > 1 {
			fmt.Printf("similar descriptions (%s): %s\n", anchor, strings.Join(members, "; "))
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("%d rows failed validation:\n", len(result.Errors))
		for _, e := range svc.ErrorPreview(result.Errors) {
			fmt.Println("  " + e)
		}
	}

	if len(result.Persisted) > 0 {
		fmt.Printf("persisted %d transactions\n", len(result.Persisted))
	}
}
