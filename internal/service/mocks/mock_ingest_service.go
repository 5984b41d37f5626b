package mocks

import (
	"context"
	"io"

	"applicantpool/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Upload(ctx context.Context, filename string, r io.Reader) (*service.UploadResult, error) {
	args := m.Called(ctx, filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}
