package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

var documentRowColumns = []string{"id", "owner_id", "file_name", "storage_path", "size", "content_type", "verification_status", "created_at", "updated_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:                 "test-uuid",
		OwnerID:            "u1",
		FileName:           "deed.pdf",
		StoragePath:        "documents/test.pdf",
		Size:               123,
		ContentType:        "application/pdf",
		VerificationStatus: model.VerificationPending,
		CreatedAt:          now,
	}

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow(doc.ID, doc.OwnerID, doc.FileName, doc.StoragePath, doc.Size, doc.ContentType, doc.VerificationStatus, now, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.OwnerID, doc.FileName, doc.StoragePath, doc.Size, doc.ContentType, doc.VerificationStatus, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, "u1", result.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found without owner", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRowColumns).
			AddRow("test-id", nil, "file.pdf", "path/file.pdf", 100, "application/pdf", "pending", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
		assert.Empty(t, doc.OwnerID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE owner_id = ?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("test-id", "u1", "file.pdf", "path/file.pdf", 100, "application/pdf", "Verified", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner_id = (.+) ORDER BY").
		WithArgs("u1", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListByOwner(ctx, "u1", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "Verified", res.Items[0].VerificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateVerificationStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("returns before and after", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"owner_id", "file_name", "verification_status", "owner_id", "file_name", "verification_status"}).
			AddRow("u1", "deed.pdf", "pending", "u1", "deed.pdf", "Verified")

		mock.ExpectQuery("WITH prev AS (.+) FOR UPDATE (.+) UPDATE documents").
			WithArgs("doc-1", "Verified").
			WillReturnRows(rows)

		change, err := repo.UpdateVerificationStatus(ctx, "doc-1", "Verified")

		assert.NoError(t, err)
		assert.Equal(t, &model.DocumentChange{
			DocID:  "doc-1",
			Before: &model.DocumentSnapshot{OwnerID: "u1", FileName: "deed.pdf", VerificationStatus: "pending"},
			After:  &model.DocumentSnapshot{OwnerID: "u1", FileName: "deed.pdf", VerificationStatus: "Verified"},
		}, change)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectQuery("WITH prev AS").
			WithArgs("missing", "Verified").
			WillReturnError(sql.ErrNoRows)

		change, err := repo.UpdateVerificationStatus(ctx, "missing", "Verified")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, change)
	})
}
