package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qtirender/internal/domain"
)

// MockFragmentRenderer is a mock implementation of port.FragmentRenderer.
type MockFragmentRenderer struct {
	mock.Mock
}

func (m *MockFragmentRenderer) Render(ctx context.Context, markup string) (*domain.RenderedFragment, error) {
	args := m.Called(ctx, markup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenderedFragment), args.Error(1)
}
