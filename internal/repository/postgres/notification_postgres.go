package postgres

import (
	"context"
	"database/sql"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

// Create appends a notification row. It is a single INSERT with no read-modify-write.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (id, user_id, message, created_at, is_read, action_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, message, created_at, is_read, action_link
	`
	var out model.Notification
	if err := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.UserID,
		n.Message,
		n.CreatedAt,
		n.IsRead,
		n.ActionLink,
	).Scan(
		&out.ID,
		&out.UserID,
		&out.Message,
		&out.CreatedAt,
		&out.IsRead,
		&out.ActionLink,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns the user's notifications newest first with a total count.
func (r *NotificationPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	const qCount = `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, user_id, message, created_at, is_read, action_link
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.IsRead, &n.ActionLink); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notification]{Items: items, Total: total}, nil
}
