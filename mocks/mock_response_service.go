package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"qtirender/internal/domain"
)

// MockResponseService is a mock implementation of service.ResponseService.
type MockResponseService struct {
	mock.Mock
}

func (m *MockResponseService) Submit(ctx context.Context, learnerID, itemID uuid.UUID, answers map[string]string) (*domain.Response, error) {
	args := m.Called(ctx, learnerID, itemID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *MockResponseService) ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error) {
	args := m.Called(ctx, itemID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Response), args.Int(1), args.Error(2)
}

func (m *MockResponseService) Export(ctx context.Context, item *domain.Item, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, item, format, w)
	return args.Error(0)
}
