package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"qtirender/internal/domain"
	"qtirender/internal/port"
	"qtirender/internal/style"
)

// CreateItemInput is the DTO for creating an item.
type CreateItemInput struct {
	Title      string    `json:"title" binding:"required,max=255"`
	SourceHTML string    `json:"source_html" binding:"required"`
	CreatedBy  uuid.UUID `json:"-"`
}

// ItemServiceConfig holds storage and limit settings for items.
type ItemServiceConfig struct {
	Bucket         string
	PresignExpiry  int64
	MaxSourceBytes int
}

// ItemService defines the item management contract.
type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, offset, limit int) ([]domain.Item, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Requeue(ctx context.Context, id uuid.UUID) error
	SnapshotURL(ctx context.Context, id uuid.UUID) (string, error)
	// SnapshotContent returns the stored snapshot page of a rendered item.
	SnapshotContent(ctx context.Context, id uuid.UUID) ([]byte, error)
	// RenderItem renders a claimed item, uploads its snapshot and records the
	// outcome. The item must already be in processing status with
	// RenderAttempts incremented.
	RenderItem(ctx context.Context, item *domain.Item, maxAttempts int)
}

type itemService struct {
	repo     port.ItemRepository
	renderer port.FragmentRenderer
	storage  port.ObjectStorage
	notifier port.RenderFailureNotifier
	cfg      ItemServiceConfig
}

// NewItemService creates a new ItemService implementation.
func NewItemService(
	repo port.ItemRepository,
	renderer port.FragmentRenderer,
	storage port.ObjectStorage,
	notifier port.RenderFailureNotifier,
	cfg ItemServiceConfig,
) ItemService {
	return &itemService{
		repo:     repo,
		renderer: renderer,
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
	}
}

// SnapshotKey returns the object key of an item's rendered snapshot.
func SnapshotKey(itemID uuid.UUID) string {
	return fmt.Sprintf("items/%s/rendered.html", itemID)
}

func (s *itemService) Create(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if strings.TrimSpace(input.SourceHTML) == "" {
		return nil, domain.ErrEmptyFragment
	}
	if s.cfg.MaxSourceBytes > 0 && len(input.SourceHTML) > s.cfg.MaxSourceBytes {
		return nil, domain.ErrFragmentTooLarge
	}

	item := &domain.Item{
		ID:                  uuid.New(),
		Title:               strings.TrimSpace(input.Title),
		SourceHTML:          input.SourceHTML,
		ResponseIdentifiers: domain.StringList{},
		RenderStatus:        domain.RenderStatusQueued,
		CreatedBy:           input.CreatedBy,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("itemService.Create: %w", err)
	}
	log.Printf("itemService.Create: item %s queued for rendering", item.ID)
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, offset, limit int) ([]domain.Item, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if item.SnapshotKey != "" {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, item.SnapshotKey); err != nil {
			log.Printf("itemService.Delete: failed to delete snapshot %s: %v", item.SnapshotKey, err)
		}
	}
	return nil
}

func (s *itemService) Requeue(ctx context.Context, id uuid.UUID) error {
	return s.repo.Requeue(ctx, id)
}

func (s *itemService) SnapshotURL(ctx context.Context, id uuid.UUID) (string, error) {
	item, err := s.renderedItem(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, item.SnapshotKey, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("itemService.SnapshotURL: %w", err)
	}
	return url, nil
}

func (s *itemService) SnapshotContent(ctx context.Context, id uuid.UUID) ([]byte, error) {
	item, err := s.renderedItem(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.storage.Download(ctx, s.cfg.Bucket, item.SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("itemService.SnapshotContent: %w", err)
	}
	return data, nil
}

func (s *itemService) renderedItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RenderStatus != domain.RenderStatusRendered || item.SnapshotKey == "" {
		return nil, domain.ErrItemNotRendered
	}
	return item, nil
}

func (s *itemService) RenderItem(ctx context.Context, item *domain.Item, maxAttempts int) {
	out, err := s.renderer.Render(ctx, item.SourceHTML)
	if err != nil {
		s.failRender(ctx, item, err, maxAttempts)
		return
	}

	key := SnapshotKey(item.ID)
	doc := snapshotDocument(item.Title, out)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:       s.cfg.Bucket,
		Key:          key,
		Body:         strings.NewReader(doc),
		ContentType:  "text/html; charset=utf-8",
		CacheControl: "private, max-age=300",
		Size:         int64(len(doc)),
	}); err != nil {
		s.failRender(ctx, item, fmt.Errorf("%w: %w", domain.ErrSnapshotFailed, err), maxAttempts)
		return
	}

	now := time.Now().UTC()
	item.RenderedHTML = out.HTML
	item.StyleCSS = joinCSS(out.Styles)
	item.BlankCount = len(out.Blanks)
	item.ResponseIdentifiers = out.ResponseIdentifiers()
	item.RenderStatus = domain.RenderStatusRendered
	item.RenderError = ""
	item.RenderedAt = &now
	item.SnapshotKey = key

	if err := s.repo.UpdateRender(ctx, item); err != nil {
		log.Printf("itemService.RenderItem: failed to save render for %s: %v", item.ID, err)
		return
	}
	log.Printf("itemService.RenderItem: item %s rendered (%d blanks)", item.ID, item.BlankCount)
}

// failRender requeues the item while attempts remain, unless the error can
// never succeed on retry.
func (s *itemService) failRender(ctx context.Context, item *domain.Item, renderErr error, maxAttempts int) {
	item.RenderError = renderErr.Error()
	failed := isPermanentRenderError(renderErr) || item.RenderAttempts >= maxAttempts
	if failed {
		item.RenderStatus = domain.RenderStatusFailed
		log.Printf("itemService.RenderItem: item %s failed after %d attempt(s): %v", item.ID, item.RenderAttempts, renderErr)
	} else {
		item.RenderStatus = domain.RenderStatusQueued
		log.Printf("itemService.RenderItem: item %s requeued (attempt %d/%d): %v", item.ID, item.RenderAttempts, maxAttempts, renderErr)
	}
	if err := s.repo.UpdateRender(ctx, item); err != nil {
		log.Printf("itemService.RenderItem: failed to save render status for %s: %v", item.ID, err)
		return
	}
	if failed && s.notifier != nil {
		if err := s.notifier.NotifyRenderFailed(ctx, item); err != nil {
			log.Printf("itemService.RenderItem: failed to send failure alert for %s: %v", item.ID, err)
		}
	}
}

func isPermanentRenderError(err error) bool {
	return errors.Is(err, domain.ErrEmptyFragment) || errors.Is(err, domain.ErrFragmentTooLarge)
}

func joinCSS(rules []domain.StyleRule) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, r.CSS)
	}
	return strings.Join(parts, "\n")
}

// snapshotDocument wraps a rendered fragment in a standalone HTML page.
func snapshotDocument(title string, out *domain.RenderedFragment) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>")
	sb.WriteString(style.Tags(out.Styles))
	sb.WriteString("</head><body>")
	sb.WriteString(out.HTML)
	sb.WriteString("</body></html>")
	return sb.String()
}
