package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"grnflow/internal/domain"
	"grnflow/internal/service"
)

// MockProcessService is a mock implementation of service.ProcessService.
type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) ProcessUpload(ctx context.Context, docs []service.InputDocument) (*domain.BatchResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockProcessService) ProcessStorage(ctx context.Context, req service.StorageRequest) (*domain.BatchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}
