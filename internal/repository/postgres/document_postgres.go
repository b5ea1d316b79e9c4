package postgres

import (
	"context"
	"database/sql"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, owner_id, file_name, storage_path, size, content_type, verification_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var (
		d     model.Document
		owner sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&owner,
		&d.FileName,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.VerificationStatus,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.OwnerID = owner.String
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, file_name, storage_path, size, content_type, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.FileName,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.VerificationStatus,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns the owner's documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE owner_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, ownerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, ownerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// UpdateVerificationStatus locks the row, records its previous state and
// applies the new status in one statement.
func (r *DocumentPostgres) UpdateVerificationStatus(ctx context.Context, id, status string) (*model.DocumentChange, error) {
	const q = `
		WITH prev AS (
			SELECT id, owner_id, file_name, verification_status
			FROM documents
			WHERE id = $1
			FOR UPDATE
		)
		UPDATE documents AS d
		SET verification_status = $2, updated_at = now()
		FROM prev
		WHERE d.id = prev.id
		RETURNING prev.owner_id, prev.file_name, prev.verification_status,
		          d.owner_id, d.file_name, d.verification_status`

	var (
		before, after           model.DocumentSnapshot
		beforeOwner, afterOwner sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, id, status).Scan(
		&beforeOwner, &before.FileName, &before.VerificationStatus,
		&afterOwner, &after.FileName, &after.VerificationStatus,
	); err != nil {
		return nil, err
	}
	before.OwnerID = beforeOwner.String
	after.OwnerID = afterOwner.String

	return &model.DocumentChange{DocID: id, Before: &before, After: &after}, nil
}
