package mocks

import (
	"context"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockApplicantRepository struct {
	mock.Mock
}

func (m *MockApplicantRepository) FindByPhone(ctx context.Context, q repository.Querier, phone string) (*model.Applicant, error) {
	args := m.Called(ctx, q, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) FindByLaborID(ctx context.Context, q repository.Querier, laborID string) (*model.Applicant, error) {
	args := m.Called(ctx, q, laborID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) Create(ctx context.Context, q repository.Querier, a *model.Applicant) (*model.Applicant, error) {
	args := m.Called(ctx, q, a)
	if f, ok := args.Get(0).(func(*model.Applicant) *model.Applicant); ok {
		return f(a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) Count(ctx context.Context, q repository.Querier) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}
