package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepository hands out monotonically increasing numbers for generated
// identifiers. The increment happens in a single upsert, so concurrent
// callers can never observe the same value.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type pgSequenceRepository struct {
	pool *pgxpool.Pool
}

func NewSequenceRepository(pool *pgxpool.Pool) SequenceRepository {
	return &pgSequenceRepository{pool: pool}
}

func (r *pgSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`
	var value int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&value)
	return value, err
}
