package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// PropertyPostgres is a read-only PostgreSQL implementation of repository.PropertyRepository.
type PropertyPostgres struct {
	db *sql.DB
}

// NewPropertyPostgres creates a new PropertyPostgres repository.
func NewPropertyPostgres(db *sql.DB) *PropertyPostgres {
	return &PropertyPostgres{db: db}
}

var _ repository.PropertyRepository = (*PropertyPostgres)(nil)

// Find returns properties matching q, ordered by sale time.
func (r *PropertyPostgres) Find(ctx context.Context, q repository.Query) ([]model.Property, error) {
	if q.Collection != repository.CollectionProperties {
		return nil, fmt.Errorf("%w: property query on %q", ErrUnsupportedQuery, q.Collection)
	}
	s, err := lookupSchema(q.Collection)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(s, q)
	if err != nil {
		return nil, err
	}

	stmt := "SELECT id, owner_id, status, expected_price, sold_at FROM properties" + where + " ORDER BY sold_at ASC, id ASC"
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	items := make([]model.Property, 0)
	for rows.Next() {
		var (
			p      model.Property
			price  sql.NullFloat64
			soldAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Status, &price, &soldAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if price.Valid {
			v := price.Float64
			p.ExpectedPrice = &v
		}
		if soldAt.Valid {
			t := soldAt.Time
			p.SoldAt = &t
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
