package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"realtyapi/internal/service"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, limit, offset int) (*service.NotificationListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationListResult), args.Error(1)
}
