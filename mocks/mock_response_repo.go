package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"qtirender/internal/domain"
)

// MockResponseRepo is a mock implementation of port.ResponseRepository.
type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) Save(ctx context.Context, resp *domain.Response) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

func (m *MockResponseRepo) ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error) {
	args := m.Called(ctx, itemID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Response), args.Int(1), args.Error(2)
}
