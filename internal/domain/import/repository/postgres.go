package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jcb03/ai-finance-advisor/internal/domain/import/parser"
)

// PgxPool is the slice of pgxpool.Pool the store needs. pgxmock's pool
// satisfies it, so tests run against the same code path.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore persists imported transactions to Postgres.
type PostgresStore struct {
	db PgxPool
}

func NewPostgresStore(db PgxPool) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertTransaction = `
	INSERT INTO imported_transactions (
		id, user_id, description, amount, transaction_date, category, account_type, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// SaveBatch inserts the whole batch over a single round trip.
func (s *PostgresStore) SaveBatch(ctx context.Context, userID uuid.UUID, txs []parser.Transaction) ([]Record, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	records := make([]Record, len(txs))
	batch := &pgx.Batch{}
	for i, tx := range txs {
		records[i] = Record{
			ID:          uuid.New(),
			UserID:      userID,
			Transaction: tx,
			CreatedAt:   now,
		}
		batch.Queue(insertTransaction,
			records[i].ID, userID, tx.Description, tx.Amount, tx.Date,
			tx.Category, tx.AccountType, now)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for range txs {
		if _, err := br.Exec(); err != nil {
			return nil, fmt.Errorf("inserting transaction batch: %w", err)
		}
	}
	return records, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Record, error) {
	query := `
		SELECT id, user_id, description, amount, transaction_date, category, account_type, created_at
		FROM imported_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.ID, &rec.UserID,
			&rec.Transaction.Description, &rec.Transaction.Amount, &rec.Transaction.Date,
			&rec.Transaction.Category, &rec.Transaction.AccountType,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transaction rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id uuid.UUID, category string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE imported_transactions SET category = $2 WHERE id = $1`,
		id, category)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
