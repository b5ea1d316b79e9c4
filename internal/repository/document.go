package repository

import (
	"context"

	"realtyapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns a page of the owner's documents and the owner's total count.
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// UpdateVerificationStatus sets the status and returns the snapshots taken
	// immediately before and after the write. It returns sql.ErrNoRows for an unknown id.
	UpdateVerificationStatus(ctx context.Context, id, status string) (*model.DocumentChange, error)
}
