package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
)

// AssetRepositoryPG implements domain.AssetRepository for source assets.
type AssetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a source-asset repository backed by PostgreSQL.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepositoryPG {
	return &AssetRepositoryPG{pool: pool}
}

// CreateBatch inserts uploaded assets for a project.
func (r *AssetRepositoryPG) CreateBatch(ctx context.Context, assets []domain.Asset) error {
	query := `
INSERT INTO assets (project_id, original_filename, storage_path, file_type, file_size_bytes, dimensions, dpi, ai_metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at;
`
	for i := range assets {
		asset := &assets[i]
		var dims []byte
		if asset.Dimensions != nil {
			encoded, err := json.Marshal(asset.Dimensions)
			if err != nil {
				return fmt.Errorf("encode dimensions: %w", err)
			}
			dims = encoded
		}
		row := r.pool.QueryRow(ctx, query,
			asset.ProjectID,
			asset.OriginalFilename,
			asset.StoragePath,
			asset.FileType,
			asset.FileSizeBytes,
			dims,
			asset.DPI,
			nullableJSON(asset.AIMetadata),
		)
		if err := row.Scan(&asset.ID, &asset.CreatedAt); err != nil {
			return fmt.Errorf("create asset: %w", err)
		}
	}
	return nil
}

// ListByProject returns a project's source assets in upload order.
func (r *AssetRepositoryPG) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Asset, error) {
	query := `
SELECT id, project_id, original_filename, storage_path, file_type, file_size_bytes, dimensions, dpi, ai_metadata, created_at
FROM assets
WHERE project_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var (
			asset domain.Asset
			dims  []byte
			meta  []byte
		)
		if err := rows.Scan(
			&asset.ID,
			&asset.ProjectID,
			&asset.OriginalFilename,
			&asset.StoragePath,
			&asset.FileType,
			&asset.FileSizeBytes,
			&dims,
			&asset.DPI,
			&meta,
			&asset.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(dims) > 0 {
			var d domain.Dimensions
			if err := json.Unmarshal(dims, &d); err == nil {
				asset.Dimensions = &d
			}
		}
		if len(meta) > 0 {
			asset.AIMetadata = json.RawMessage(meta)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// IDsByProject returns just the asset ids of a project in upload order.
func (r *AssetRepositoryPG) IDsByProject(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM assets WHERE project_id = $1 ORDER BY created_at ASC;`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ domain.AssetRepository = (*AssetRepositoryPG)(nil)
