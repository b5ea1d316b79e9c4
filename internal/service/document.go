package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"realtyapi/internal/logger"
	"realtyapi/internal/model"
	"realtyapi/internal/repository"
	"realtyapi/internal/storage"
)

const downloadURLExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// ChangePublisher forwards document changes to whoever observes them.
type ChangePublisher interface {
	Publish(ctx context.Context, change model.DocumentChange) error
}

// DocumentService defines the use cases for handling an owner's documents.
type DocumentService interface {
	// Upload stores the content, records it as pending verification, and rolls
	// back storage if the record cannot be saved.
	Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns the owner's documents using limit/offset and a total count.
	List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error)

	// Get returns one of the owner's documents.
	Get(ctx context.Context, ownerID, id string) (*model.Document, error)

	// Delete removes one of the owner's documents from both storage and repository.
	Delete(ctx context.Context, ownerID, id string) error

	// DownloadURL returns a time-limited link to one of the owner's documents.
	DownloadURL(ctx context.Context, ownerID, id string) (string, error)

	// UpdateVerificationStatus records a verification result and publishes the
	// resulting before/after change. A publish error is returned after the
	// status is already committed, so callers must not retry the update on it.
	UpdateVerificationStatus(ctx context.Context, id, status string) (*model.DocumentChange, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	publisher ChangePublisher
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, publisher ChangePublisher) DocumentService {
	return &documentService{store: store, repo: repo, publisher: publisher}
}

func (s *documentService) Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	// Object key is UUID + original extension; the display name is kept on the record.
	ext := strings.ToLower(filepath.Ext(originalFilename))
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"owner-id":          ownerID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:                 uuid.New().String(),
		OwnerID:            ownerID,
		FileName:           filepath.Base(originalFilename),
		StoragePath:        objInfo.Key,
		Size:               objInfo.Size,
		ContentType:        objInfo.ContentType,
		VerificationStatus: model.VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, ownerID string, limit, offset int) (*DocumentListResult, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	limit, offset = normalizePage(limit, offset)

	res, err := s.repo.ListByOwner(ctx, ownerID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get hides documents of other owners behind ErrNotFound.
func (s *documentService) Get(ctx context.Context, ownerID, id string) (*model.Document, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) DownloadURL(ctx context.Context, ownerID, id string) (string, error) {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, downloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *documentService) UpdateVerificationStatus(ctx context.Context, id, status string) (*model.DocumentChange, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrInvalidStatus
	}

	change, err := s.repo.UpdateVerificationStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update verification status: %w", err)
	}

	// The status is already committed; a failed publish loses this change's notification.
	if err := s.publisher.Publish(ctx, *change); err != nil {
		logger.Error(ctx, "failed to publish document change", "doc_id", id, "error", err)
		return nil, fmt.Errorf("publish document change: %w", err)
	}
	return change, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
