package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"realtyapi/internal/repository"
)

type MockAggregateRepository struct {
	mock.Mock
}

func (m *MockAggregateRepository) Count(ctx context.Context, q repository.Query) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAggregateRepository) CountAndSum(ctx context.Context, q repository.Query, sumField string) (repository.AggregateResult, error) {
	args := m.Called(ctx, q, sumField)
	return args.Get(0).(repository.AggregateResult), args.Error(1)
}
