package noop

import (
	"context"
	"log"

	"qtirender/internal/domain"
	"qtirender/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a RenderFailureNotifier that only logs.
func NewNoopNotifier() port.RenderFailureNotifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyRenderFailed(_ context.Context, item *domain.Item) error {
	log.Printf("[NOOP NOTIFY] item %s (%q) failed to render after %d attempt(s): %s",
		item.ID, item.Title, item.RenderAttempts, item.RenderError)
	return nil
}
