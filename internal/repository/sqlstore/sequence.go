package sqlstore

import (
	"context"
	"database/sql"

	"car-rental-backend/internal/repository"
)

type sequenceRepository struct {
	db *sql.DB
}

func NewSequenceRepository(db *sql.DB) repository.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments and returns the named counter in a single statement, so
// concurrent minters can never observe or reuse the same value.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO sequences (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
	          RETURNING value`
	var value int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	return value, err
}

// EnsureAtLeast raises the counter to floor if it is below it. The counter
// never moves backwards.
func (r *sequenceRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	query := `INSERT INTO sequences (name, value) VALUES ($1, $2)
	          ON CONFLICT (name) DO UPDATE SET value = CASE
	              WHEN sequences.value < excluded.value THEN excluded.value
	              ELSE sequences.value
	          END`
	_, err := r.db.ExecContext(ctx, query, name, floor)
	return err
}
