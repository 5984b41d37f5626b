package mocks

import (
	"context"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, q repository.Querier, app *model.Application) (*model.Application, error) {
	args := m.Called(ctx, q, app)
	if f, ok := args.Get(0).(func(*model.Application) *model.Application); ok {
		return f(app), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Search(ctx context.Context, q repository.Querier, f repository.SearchFilter) ([]model.ApplicationRecord, error) {
	args := m.Called(ctx, q, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationRecord), args.Error(1)
}

func (m *MockApplicationRepository) Count(ctx context.Context, q repository.Querier) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationRepository) CountByPosition(ctx context.Context, q repository.Querier) ([]model.PositionCount, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PositionCount), args.Error(1)
}

func (m *MockApplicationRepository) Recent(ctx context.Context, q repository.Querier, limit int) ([]model.RecentActivity, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecentActivity), args.Error(1)
}

func (m *MockApplicationRepository) DistinctPositions(ctx context.Context, q repository.Querier) ([]string, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
