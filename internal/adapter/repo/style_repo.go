package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
)

// StyleRepositoryPG implements domain.StyleRepository.
type StyleRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewStyleRepository creates a text-style repository backed by PostgreSQL.
func NewStyleRepository(pool *pgxpool.Pool) *StyleRepositoryPG {
	return &StyleRepositoryPG{pool: pool}
}

// List returns every style set.
func (r *StyleRepositoryPG) List(ctx context.Context) ([]domain.TextStyleSet, error) {
	query := `
SELECT id, name, styles, is_active, created_at
FROM text_style_sets
ORDER BY name ASC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []domain.TextStyleSet
	for rows.Next() {
		var set domain.TextStyleSet
		var styles []byte
		if err := rows.Scan(&set.ID, &set.Name, &styles, &set.IsActive, &set.CreatedAt); err != nil {
			return nil, err
		}
		set.Styles = json.RawMessage(styles)
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// Create inserts a new style set.
func (r *StyleRepositoryPG) Create(ctx context.Context, set *domain.TextStyleSet) error {
	query := `
INSERT INTO text_style_sets (name, styles, is_active)
VALUES ($1, $2, TRUE)
RETURNING id, is_active, created_at;
`
	row := r.pool.QueryRow(ctx, query, set.Name, []byte(set.Styles))
	if err := row.Scan(&set.ID, &set.IsActive, &set.CreatedAt); err != nil {
		return fmt.Errorf("create style set: %w", err)
	}
	return nil
}

// Update rewrites a style set.
func (r *StyleRepositoryPG) Update(ctx context.Context, set *domain.TextStyleSet) error {
	query := `
UPDATE text_style_sets
SET name = $2, styles = $3, is_active = $4
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, set.ID, set.Name, []byte(set.Styles), set.IsActive)
	if err != nil {
		return fmt.Errorf("update style set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a style set.
func (r *StyleRepositoryPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM text_style_sets WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete style set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.StyleRepository = (*StyleRepositoryPG)(nil)
