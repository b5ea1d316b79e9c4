package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

var notificationRowColumns = []string{"id", "user_id", "message", "created_at", "is_read", "action_link"}

func TestNotificationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	n := &model.Notification{
		ID:         "n1",
		UserID:     "u1",
		Message:    "done",
		CreatedAt:  now,
		ActionLink: "/documents/d1",
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(n.ID, n.UserID, n.Message, n.CreatedAt, false, n.ActionLink).
			WillReturnRows(sqlmock.NewRows(notificationRowColumns).AddRow("n1", "u1", "done", now, false, "/documents/d1"))

		out, err := repo.Create(ctx, n)

		assert.NoError(t, err)
		assert.Equal(t, "u1", out.UserID)
		assert.False(t, out.IsRead)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO notifications").WillReturnError(errors.New("disk full"))

		out, err := repo.Create(ctx, n)

		assert.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestNotificationPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM notifications WHERE user_id = ?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = (.+) ORDER BY created_at DESC").
		WithArgs("u1", 20, 0).
		WillReturnRows(sqlmock.NewRows(notificationRowColumns).
			AddRow("n2", "u1", "second", time.Now(), false, "/documents/d2").
			AddRow("n1", "u1", "first", time.Now().Add(-time.Hour), true, "/documents/d1"))

	res, err := repo.ListByUser(context.Background(), "u1", repository.PageQuery{Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "n2", res.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
