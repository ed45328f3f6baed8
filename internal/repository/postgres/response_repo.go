package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"qtirender/internal/domain"
	"qtirender/internal/port"
)

type responseRepo struct {
	db *sqlx.DB
}

// NewResponseRepo creates a new PostgreSQL-backed ResponseRepository.
func NewResponseRepo(db *sqlx.DB) port.ResponseRepository {
	return &responseRepo{db: db}
}

func (r *responseRepo) Save(ctx context.Context, resp *domain.Response) error {
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now().UTC()
	}

	// On resubmission the original row id is kept and returned.
	err := r.db.GetContext(ctx, &resp.ID,
		`INSERT INTO responses (id, item_id, learner_id, answers, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (item_id, learner_id) DO UPDATE SET
			answers = EXCLUDED.answers,
			submitted_at = EXCLUDED.submitted_at
		 RETURNING id`,
		resp.ID, resp.ItemID, resp.LearnerID, resp.Answers, resp.SubmittedAt)
	if err != nil {
		return fmt.Errorf("responseRepo.Save: %w", err)
	}
	return nil
}

func (r *responseRepo) ListByItem(ctx context.Context, itemID uuid.UUID, offset, limit int) ([]domain.Response, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM responses WHERE item_id = $1", itemID)
	if err != nil {
		return nil, 0, fmt.Errorf("responseRepo.ListByItem count: %w", err)
	}

	var responses []domain.Response
	err = r.db.SelectContext(ctx, &responses,
		`SELECT * FROM responses WHERE item_id = $1
		 ORDER BY submitted_at, id LIMIT $2 OFFSET $3`,
		itemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("responseRepo.ListByItem: %w", err)
	}
	return responses, total, nil
}
