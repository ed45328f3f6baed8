package port

import (
	"context"

	"qtirender/internal/domain"
)

// FragmentRenderer turns item markup into accessible HTML.
type FragmentRenderer interface {
	Render(ctx context.Context, markup string) (*domain.RenderedFragment, error)
}
