package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realtyapi/internal/logger"
	"realtyapi/internal/metrics"
	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// Outcome describes what the notifier did with one document change.
type Outcome string

const (
	OutcomeCreated      Outcome = "created"
	OutcomeSkipped      Outcome = "skipped"
	OutcomeMissingOwner Outcome = "missing_owner"
	OutcomeMalformed    Outcome = "malformed"
	OutcomeFailed       Outcome = "failed"
)

const unnamedDocument = "an unnamed document"

var qualifyingStatuses = map[string]struct{}{
	model.VerificationVerified:    {},
	model.VerificationIssuesFound: {},
}

// Notifier turns document verification transitions into owner notifications.
// It only ever appends notifications; the document itself is never touched.
type Notifier struct {
	repo    repository.NotificationRepository
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NotifierOption customises a Notifier.
type NotifierOption func(*Notifier)

// WithNotifierClock overrides the createdAt time source.
func WithNotifierClock(now func() time.Time) NotifierOption {
	return func(n *Notifier) { n.now = now }
}

// WithNotifierMetrics records outcomes on m.
func WithNotifierMetrics(m *metrics.Metrics) NotifierOption {
	return func(n *Notifier) { n.metrics = m }
}

// NewNotifier constructs a Notifier appending to repo.
func NewNotifier(repo repository.NotificationRepository, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Handle evaluates one change. Only a store failure is returned as an error
// (ErrInternal); malformed payloads, non-qualifying transitions and documents
// without an owner are logged and reported through the Outcome.
func (n *Notifier) Handle(ctx context.Context, change model.DocumentChange) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Notifier.Handle", trace.WithAttributes(attribute.String("document.id", change.DocID)))
	defer span.End()

	outcome, err := n.handle(ctx, change)
	span.SetAttributes(attribute.String("notifier.outcome", string(outcome)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification append failed")
	}
	n.metrics.ObserveNotifierOutcome(string(outcome))
	return outcome, err
}

// HandleChange adapts Handle to the event consumer signature.
func (n *Notifier) HandleChange(ctx context.Context, change model.DocumentChange) error {
	_, err := n.Handle(ctx, change)
	return err
}

func (n *Notifier) handle(ctx context.Context, change model.DocumentChange) (Outcome, error) {
	if change.Before == nil || change.After == nil {
		logger.Warn(ctx, "document change without before/after data", "doc_id", change.DocID)
		return OutcomeMalformed, nil
	}

	oldStatus := change.Before.VerificationStatus
	newStatus := change.After.VerificationStatus
	if _, ok := qualifyingStatuses[newStatus]; !ok || oldStatus == newStatus {
		logger.Info(ctx, "no relevant status change",
			"doc_id", change.DocID,
			"old_status", oldStatus,
			"new_status", newStatus,
		)
		return OutcomeSkipped, nil
	}

	ownerID := change.After.OwnerID
	if ownerID == "" {
		logger.Error(ctx, "document has no owner, notification not created", "doc_id", change.DocID, "new_status", newStatus)
		return OutcomeMissingOwner, nil
	}

	notif := &model.Notification{
		ID:         n.newID(),
		UserID:     ownerID,
		Message:    NotificationMessage(change.After.FileName, newStatus),
		CreatedAt:  n.now(),
		IsRead:     false,
		ActionLink: "/documents/" + change.DocID,
	}
	if _, err := n.repo.Create(ctx, notif); err != nil {
		logger.Error(ctx, "failed to create verification notification",
			"doc_id", change.DocID,
			"owner_id", ownerID,
			"error", fmt.Errorf("append notification: %w", err),
		)
		return OutcomeFailed, ErrInternal
	}

	logger.Info(ctx, "verification notification created", "doc_id", change.DocID, "owner_id", ownerID, "status", newStatus)
	return OutcomeCreated, nil
}

// NotificationMessage renders the text shown to the document owner.
func NotificationMessage(fileName, status string) string {
	if fileName == "" {
		fileName = unnamedDocument
	}
	return fmt.Sprintf("Verification for '%s' is complete. Status: %s.", fileName, status)
}
