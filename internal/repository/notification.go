package repository

import (
	"context"

	"realtyapi/internal/model"
)

// NotificationRepository appends and lists notifications.
type NotificationRepository interface {
	// Create appends one notification record.
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Notification], error)
}
