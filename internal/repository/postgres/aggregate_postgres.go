package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"realtyapi/internal/repository"
)

// AggregatePostgres implements repository.AggregateRepository with COUNT/SUM statements.
type AggregatePostgres struct {
	db *sql.DB
}

// NewAggregatePostgres creates a new AggregatePostgres repository.
func NewAggregatePostgres(db *sql.DB) *AggregatePostgres {
	return &AggregatePostgres{db: db}
}

var _ repository.AggregateRepository = (*AggregatePostgres)(nil)

// Count runs SELECT COUNT(*) over the filtered collection.
func (r *AggregatePostgres) Count(ctx context.Context, q repository.Query) (int64, error) {
	s, err := lookupSchema(q.Collection)
	if err != nil {
		return 0, err
	}
	where, args, err := buildWhere(s, q)
	if err != nil {
		return 0, err
	}

	var n int64
	stmt := "SELECT COUNT(*) FROM " + s.table + where
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

// CountAndSum computes COUNT(*) and SUM(sumField) in one statement so both
// figures describe the same rows.
func (r *AggregatePostgres) CountAndSum(ctx context.Context, q repository.Query, sumField string) (repository.AggregateResult, error) {
	s, err := lookupSchema(q.Collection)
	if err != nil {
		return repository.AggregateResult{}, err
	}
	sumCol, err := s.column(sumField)
	if err != nil {
		return repository.AggregateResult{}, err
	}
	where, args, err := buildWhere(s, q)
	if err != nil {
		return repository.AggregateResult{}, err
	}

	var (
		count int64
		sum   sql.NullFloat64
	)
	stmt := "SELECT COUNT(*), SUM(" + sumCol + ") FROM " + s.table + where
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count, &sum); err != nil {
		return repository.AggregateResult{}, fmt.Errorf("count and sum %s: %w", s.table, err)
	}

	res := repository.AggregateResult{Count: count}
	if sum.Valid {
		res.Sum = sum.Float64
	}
	return res, nil
}
