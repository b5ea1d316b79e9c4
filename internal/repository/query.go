package repository

import "context"

// Collection names understood by repository implementations.
const (
	CollectionLeads         = "leads"
	CollectionProperties    = "properties"
	CollectionDocuments     = "documents"
	CollectionNotifications = "notifications"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEqual          Operator = "=="
	OpIn             Operator = "in"
	OpGreaterOrEqual Operator = ">="
)

// Filter restricts a query to records whose Field compares to Value with Op.
// For OpIn, Value must be a []string.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Query is a store-agnostic filtered selection over one collection.
// Filters are combined with AND.
type Query struct {
	Collection string
	Filters    []Filter
}

// From starts a query over collection.
func From(collection string) Query {
	return Query{Collection: collection}
}

// Where returns a copy of q with an additional filter; q itself is not modified.
func (q Query) Where(field string, op Operator, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// AggregateResult is a count and a sum computed over the same filtered set.
type AggregateResult struct {
	Count int64
	Sum   float64
}

// AggregateRepository computes summaries without transferring matching records.
type AggregateRepository interface {
	// Count returns the number of records matching q.
	Count(ctx context.Context, q Query) (int64, error)

	// CountAndSum returns the count of records matching q and the sum of sumField
	// over them, in a single round trip. Records with a null sumField still count.
	CountAndSum(ctx context.Context, q Query, sumField string) (AggregateResult, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
