package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
)

// PlatformRepositoryPG implements domain.PlatformRepository.
type PlatformRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPlatformRepository creates a platform repository backed by PostgreSQL.
func NewPlatformRepository(pool *pgxpool.Pool) *PlatformRepositoryPG {
	return &PlatformRepositoryPG{pool: pool}
}

// NamesByID batch-resolves platform display names; missing ids are absent
// from the result.
func (r *PlatformRepositoryPG) NamesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM repurposing_platforms WHERE id = ANY($1);`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// ListActive returns every active platform.
func (r *PlatformRepositoryPG) ListActive(ctx context.Context) ([]domain.RepurposingPlatform, error) {
	query := `
SELECT id, name, is_active, created_at
FROM repurposing_platforms
WHERE is_active = TRUE
ORDER BY name ASC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var platforms []domain.RepurposingPlatform
	for rows.Next() {
		var p domain.RepurposingPlatform
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, rows.Err()
}

// Create inserts a new platform.
func (r *PlatformRepositoryPG) Create(ctx context.Context, platform *domain.RepurposingPlatform) error {
	query := `
INSERT INTO repurposing_platforms (name, is_active)
VALUES ($1, TRUE)
RETURNING id, is_active, created_at;
`
	row := r.pool.QueryRow(ctx, query, platform.Name)
	if err := row.Scan(&platform.ID, &platform.IsActive, &platform.CreatedAt); err != nil {
		return fmt.Errorf("create platform: %w", err)
	}
	return nil
}

// Update rewrites a platform's name and active flag.
func (r *PlatformRepositoryPG) Update(ctx context.Context, platform *domain.RepurposingPlatform) error {
	query := `
UPDATE repurposing_platforms
SET name = $2, is_active = $3
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, platform.ID, platform.Name, platform.IsActive)
	if err != nil {
		return fmt.Errorf("update platform: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a platform and cascades to its formats.
func (r *PlatformRepositoryPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM repurposing_platforms WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete platform: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.PlatformRepository = (*PlatformRepositoryPG)(nil)
