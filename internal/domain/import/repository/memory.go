package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// MemoryStore is an in-process TransactionStore used by tests and as
// the CLI default when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStore) SaveBatch(_ context.Context, userID uuid.UUID, txs []parser.Transaction) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]Record, 0, len(txs))
	now := time.Now().UTC()
	for _, tx := range txs {
		rec := Record{
			ID:          uuid.New(),
			UserID:      userID,
			Transaction: tx,
			CreatedAt:   now,
		}
		s.records[rec.ID] = rec
		s.order = append(s.order, rec.ID)
		saved = append(saved, rec)
	}
	return saved, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, id := range s.order {
		rec := s.records[id]
		if rec.UserID != userID {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, id uuid.UUID, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Transaction.Category = category
	s.records[id] = rec
	return nil
}
