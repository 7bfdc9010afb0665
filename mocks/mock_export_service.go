package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"grnflow/internal/domain"
	"grnflow/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, batchID uuid.UUID, format domain.ExportFormat) (*service.ExportOutput, error) {
	args := m.Called(ctx, batchID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}

func (m *MockExportService) AppendToMaster(ctx context.Context, batchID uuid.UUID) (int, error) {
	args := m.Called(ctx, batchID)
	return args.Int(0), args.Error(1)
}
