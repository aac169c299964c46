package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
)

// FormatRepositoryPG implements domain.FormatRepository.
type FormatRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewFormatRepository creates a format catalog repository backed by PostgreSQL.
func NewFormatRepository(pool *pgxpool.Pool) *FormatRepositoryPG {
	return &FormatRepositoryPG{pool: pool}
}

const formatColumns = `id, name, type, platform_id, COALESCE(category, ''), width, height, is_active, created_at`

// Resolve batch-looks-up format descriptors. Ids with no match are simply
// absent from the returned map.
func (r *FormatRepositoryPG) Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AssetFormat, error) {
	result := make(map[uuid.UUID]domain.AssetFormat, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `
SELECT ` + formatColumns + `
FROM asset_formats
WHERE id = ANY($1);
`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		format, err := scanFormat(rows.Scan)
		if err != nil {
			return nil, err
		}
		result[format.ID] = *format
	}
	return result, rows.Err()
}

// ListActive returns every active catalog entry.
func (r *FormatRepositoryPG) ListActive(ctx context.Context) ([]domain.AssetFormat, error) {
	query := `
SELECT ` + formatColumns + `
FROM asset_formats
WHERE is_active = TRUE
ORDER BY created_at ASC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formats []domain.AssetFormat
	for rows.Next() {
		format, err := scanFormat(rows.Scan)
		if err != nil {
			return nil, err
		}
		formats = append(formats, *format)
	}
	return formats, rows.Err()
}

// ListAll returns every catalog entry, inactive ones included.
func (r *FormatRepositoryPG) ListAll(ctx context.Context) ([]domain.AssetFormat, error) {
	query := `
SELECT ` + formatColumns + `
FROM asset_formats
ORDER BY created_at ASC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formats []domain.AssetFormat
	for rows.Next() {
		format, err := scanFormat(rows.Scan)
		if err != nil {
			return nil, err
		}
		formats = append(formats, *format)
	}
	return formats, rows.Err()
}

// Create inserts a new catalog entry.
func (r *FormatRepositoryPG) Create(ctx context.Context, format *domain.AssetFormat) error {
	query := `
INSERT INTO asset_formats (name, type, platform_id, category, width, height, is_active)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
RETURNING id, created_at;
`
	row := r.pool.QueryRow(ctx, query, format.Name, format.Type, format.PlatformID, format.Category, format.Width, format.Height, format.IsActive)
	if err := row.Scan(&format.ID, &format.CreatedAt); err != nil {
		return fmt.Errorf("create format: %w", err)
	}
	return nil
}

// Update rewrites a catalog entry.
func (r *FormatRepositoryPG) Update(ctx context.Context, format *domain.AssetFormat) error {
	query := `
UPDATE asset_formats
SET name = $2, type = $3, platform_id = $4, category = NULLIF($5, ''), width = $6, height = $7, is_active = $8
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, format.ID, format.Name, format.Type, format.PlatformID, format.Category, format.Width, format.Height, format.IsActive)
	if err != nil {
		return fmt.Errorf("update format: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a catalog entry. Derived assets referencing it keep a null
// format id (ON DELETE SET NULL).
func (r *FormatRepositoryPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM asset_formats WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete format: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFormat(scan func(dest ...any) error) (*domain.AssetFormat, error) {
	var format domain.AssetFormat
	if err := scan(
		&format.ID,
		&format.Name,
		&format.Type,
		&format.PlatformID,
		&format.Category,
		&format.Width,
		&format.Height,
		&format.IsActive,
		&format.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &format, nil
}

var _ domain.FormatRepository = (*FormatRepositoryPG)(nil)
