package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"realtyapi/internal/model"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, change model.DocumentChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}
