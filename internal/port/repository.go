package port

import (
	"context"

	"github.com/google/uuid"

	"qtirender/internal/domain"
)

// ItemRepository defines the contract for item persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, offset, limit int) ([]domain.Item, int, error)
	// UpdateRender stores the render outcome: output, status, error and attempts.
	UpdateRender(ctx context.Context, item *domain.Item) error
	// ClaimQueued atomically moves up to limit queued items to processing and
	// returns them with RenderAttempts already incremented.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Item, error)
	// ListIDsAfter pages through item ids in ascending order.
	ListIDsAfter(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)
	// Requeue resets an item to queued with zero attempts.
	Requeue(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResponseRepository defines the contract for learner response persistence.
type ResponseRepository interface {
	// Save inserts resp, replacing an earlier response by the same learner
	// to the same item.
	Save(ctx context.Context, resp *domain.Response) error
	ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error)
}
