package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Find(ctx context.Context, q repository.Query) ([]model.Property, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Property), args.Error(1)
}
