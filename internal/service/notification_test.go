package service

import (
	"context"
	"errors"
	"testing"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
	repoMocks "realtyapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("lists caller notifications", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		svc := NewNotificationService(mRepo)

		mRepo.On("ListByUser", ctx, "u1", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Notification]{
				Items: []model.Notification{{ID: "n1", UserID: "u1"}},
				Total: 1,
			}, nil)

		res, err := svc.List(ctx, "u1", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "n1", res.Items[0].ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing caller", func(t *testing.T) {
		svc := NewNotificationService(new(repoMocks.MockNotificationRepository))

		_, err := svc.List(ctx, "", 10, 0)

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockNotificationRepository)
		svc := NewNotificationService(mRepo)
		mRepo.On("ListByUser", ctx, "u1", repository.PageQuery{Limit: 5, Offset: 5}).Return(nil, errors.New("db fail"))

		res, err := svc.List(ctx, "u1", 5, 5)

		assert.EqualError(t, err, "db fail")
		assert.Nil(t, res)
	})
}
