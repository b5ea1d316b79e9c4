package postgres

import (
	"errors"
	"fmt"
	"strings"

	"realtyapi/internal/repository"
)

// ErrUnsupportedQuery is returned for collections, fields, or operators with no SQL mapping.
var ErrUnsupportedQuery = errors.New("unsupported query")

type collectionSchema struct {
	table   string
	columns map[string]string
}

// schemas maps store-agnostic field names to columns. Only listed fields can be
// filtered or aggregated, so user input never reaches the SQL text.
var schemas = map[string]collectionSchema{
	repository.CollectionLeads: {
		table: "leads",
		columns: map[string]string{
			"id":        "id",
			"ownerId":   "owner_id",
			"status":    "status",
			"createdAt": "created_at",
		},
	},
	repository.CollectionProperties: {
		table: "properties",
		columns: map[string]string{
			"id":            "id",
			"ownerId":       "owner_id",
			"status":        "status",
			"expectedPrice": "expected_price",
			"soldAt":        "sold_at",
		},
	},
	repository.CollectionDocuments: {
		table: "documents",
		columns: map[string]string{
			"id":                 "id",
			"ownerId":            "owner_id",
			"verificationStatus": "verification_status",
			"createdAt":          "created_at",
		},
	},
	repository.CollectionNotifications: {
		table: "notifications",
		columns: map[string]string{
			"userId":    "user_id",
			"isRead":    "is_read",
			"createdAt": "created_at",
		},
	},
}

func lookupSchema(collection string) (collectionSchema, error) {
	s, ok := schemas[collection]
	if !ok {
		return collectionSchema{}, fmt.Errorf("%w: collection %q", ErrUnsupportedQuery, collection)
	}
	return s, nil
}

func (s collectionSchema) column(field string) (string, error) {
	c, ok := s.columns[field]
	if !ok {
		return "", fmt.Errorf("%w: field %q on %s", ErrUnsupportedQuery, field, s.table)
	}
	return c, nil
}

// buildWhere renders the filters of q as a WHERE clause with $n placeholders.
// The clause is empty when q has no filters.
func buildWhere(s collectionSchema, q repository.Query) (string, []any, error) {
	if len(q.Filters) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(q.Filters))
	args := make([]any, 0, len(q.Filters))
	for _, f := range q.Filters {
		col, err := s.column(f.Field)
		if err != nil {
			return "", nil, err
		}

		switch f.Op {
		case repository.OpEqual:
			args = append(args, f.Value)
			parts = append(parts, fmt.Sprintf("%s = $%d", col, len(args)))
		case repository.OpGreaterOrEqual:
			args = append(args, f.Value)
			parts = append(parts, fmt.Sprintf("%s >= $%d", col, len(args)))
		case repository.OpIn:
			values, ok := f.Value.([]string)
			if !ok {
				return "", nil, fmt.Errorf("%w: %q expects []string, got %T", ErrUnsupportedQuery, f.Op, f.Value)
			}
			if len(values) == 0 {
				parts = append(parts, "FALSE")
				continue
			}
			ph := make([]string, len(values))
			for i, v := range values {
				args = append(args, v)
				ph[i] = fmt.Sprintf("$%d", len(args))
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", col, strings.Join(ph, ", ")))
		default:
			return "", nil, fmt.Errorf("%w: operator %q", ErrUnsupportedQuery, f.Op)
		}
	}

	return " WHERE " + strings.Join(parts, " AND "), args, nil
}
