package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"qtirender/internal/domain"
	"qtirender/internal/export"
	"qtirender/internal/port"
)

const exportBatchSize = 500

// SubmitResponseInput is the DTO for submitting answers to an item.
type SubmitResponseInput struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// ResponseService defines the learner response contract.
type ResponseService interface {
	Submit(ctx context.Context, learnerID, itemID uuid.UUID, answers map[string]string) (*domain.Response, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error)
	// Export writes every response to item in the given format.
	Export(ctx context.Context, item *domain.Item, format domain.ExportFormat, w io.Writer) error
}

type responseService struct {
	itemRepo     port.ItemRepository
	responseRepo port.ResponseRepository
}

// NewResponseService creates a new ResponseService implementation.
func NewResponseService(itemRepo port.ItemRepository, responseRepo port.ResponseRepository) ResponseService {
	return &responseService{itemRepo: itemRepo, responseRepo: responseRepo}
}

func (s *responseService) Submit(ctx context.Context, learnerID, itemID uuid.UUID, answers map[string]string) (*domain.Response, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RenderStatus != domain.RenderStatusRendered {
		return nil, domain.ErrItemNotRendered
	}
	if len(answers) == 0 {
		return nil, domain.ErrEmptyResponse
	}
	for key := range answers {
		if !item.ResponseIdentifiers.Contains(key) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResponseIdentifier, key)
		}
	}

	resp := &domain.Response{
		ID:          uuid.New(),
		ItemID:      itemID,
		LearnerID:   learnerID,
		Answers:     domain.Answers(answers),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.responseRepo.Save(ctx, resp); err != nil {
		return nil, fmt.Errorf("responseService.Submit: %w", err)
	}
	return resp, nil
}

func (s *responseService) ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error) {
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, 0, err
	}
	return s.responseRepo.ListByItem(ctx, itemID, offset, limit)
}

func (s *responseService) Export(ctx context.Context, item *domain.Item, format domain.ExportFormat, w io.Writer) error {
	writer, err := export.NewWriter(format, w, item.ResponseIdentifiers)
	if err != nil {
		return err
	}
	if err := writer.WriteHeader(); err != nil {
		_ = writer.Close()
		return fmt.Errorf("responseService.Export header: %w", err)
	}

	for offset := 0; ; offset += exportBatchSize {
		batch, total, err := s.responseRepo.ListByItem(ctx, item.ID, offset, exportBatchSize)
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("responseService.Export: %w", err)
		}
		if err := writer.WriteResponses(batch); err != nil {
			_ = writer.Close()
			return fmt.Errorf("responseService.Export rows: %w", err)
		}
		if len(batch) < exportBatchSize || offset+len(batch) >= total {
			break
		}
	}
	return writer.Close()
}
