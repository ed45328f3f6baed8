package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qtirender/internal/domain"
)

// MockRenderFailureNotifier is a mock implementation of port.RenderFailureNotifier.
type MockRenderFailureNotifier struct {
	mock.Mock
}

func (m *MockRenderFailureNotifier) NotifyRenderFailed(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
