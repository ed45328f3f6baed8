package port

import (
	"context"

	"qtirender/internal/domain"
)

// RenderFailureNotifier alerts operators about items that can no longer be
// rendered automatically.
type RenderFailureNotifier interface {
	NotifyRenderFailed(ctx context.Context, item *domain.Item) error
}
