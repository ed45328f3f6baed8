package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"qtirender/internal/domain"
	"qtirender/internal/port"
)

type itemRepo struct {
	db *sqlx.DB
}

// NewItemRepo creates a new PostgreSQL-backed ItemRepository.
func NewItemRepo(db *sqlx.DB) port.ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `INSERT INTO items (
		id, title, source_html, rendered_html, style_css,
		blank_count, response_identifiers,
		render_status, render_error, render_attempts, rendered_at,
		snapshot_key, created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7,
		$8, $9, $10, $11,
		$12, $13, $14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.SourceHTML, item.RenderedHTML, item.StyleCSS,
		item.BlankCount, item.ResponseIdentifiers,
		item.RenderStatus, item.RenderError, item.RenderAttempts, item.RenderedAt,
		item.SnapshotKey, item.CreatedBy, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("itemRepo.Create: %w", err)
	}
	return nil
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	err := r.db.GetContext(ctx, &item, "SELECT * FROM items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context, offset, limit int) ([]domain.Item, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM items"); err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List count: %w", err)
	}

	var items []domain.Item
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("itemRepo.List: %w", err)
	}
	return items, total, nil
}

func (r *itemRepo) UpdateRender(ctx context.Context, item *domain.Item) error {
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET
			rendered_html = $1, style_css = $2,
			blank_count = $3, response_identifiers = $4,
			render_status = $5, render_error = $6, render_attempts = $7,
			rendered_at = $8, snapshot_key = $9, updated_at = $10
		 WHERE id = $11`,
		item.RenderedHTML, item.StyleCSS,
		item.BlankCount, item.ResponseIdentifiers,
		item.RenderStatus, item.RenderError, item.RenderAttempts,
		item.RenderedAt, item.SnapshotKey, item.UpdatedAt,
		item.ID)
	if err != nil {
		return fmt.Errorf("itemRepo.UpdateRender: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ClaimQueued uses SKIP LOCKED so that several workers can poll the same
// table without handing out an item twice.
func (r *itemRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.SelectContext(ctx, &items,
		`UPDATE items SET
			render_status = $1,
			render_attempts = render_attempts + 1,
			updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM items
			WHERE render_status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.RenderStatusProcessing, domain.RenderStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ClaimQueued: %w", err)
	}
	return items, nil
}

func (r *itemRepo) ListIDsAfter(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		`SELECT id FROM items WHERE id > $1 ORDER BY id LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.ListIDsAfter: %w", err)
	}
	return ids, nil
}

func (r *itemRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET
			render_status = $1, render_error = '', render_attempts = 0, updated_at = NOW()
		 WHERE id = $2`,
		domain.RenderStatusQueued, id)
	if err != nil {
		return fmt.Errorf("itemRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("itemRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
