package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"realtyapi/internal/model"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetKPIs(ctx context.Context, ownerID string) (*model.DashboardKPIs, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardKPIs), args.Error(1)
}

func (m *MockDashboardService) GetSalesChart(ctx context.Context, ownerID string) (*model.SalesChart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SalesChart), args.Error(1)
}
