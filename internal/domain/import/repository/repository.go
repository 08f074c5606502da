package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("transaction not found")

// Record is a persisted transaction with its storage identity.
type Record struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Transaction parser.Transaction
	CreatedAt   time.Time
}

// TransactionStore persists imported transactions. The pipeline hands
// batches off after processing and never reads them back itself.
type TransactionStore interface {
	SaveBatch(ctx context.Context, userID uuid.UUID, txs []parser.Transaction) ([]Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Record, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, category string) error
}
