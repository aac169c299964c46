package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
)

// GeneratedAssetRepositoryPG implements domain.GeneratedAssetRepository.
type GeneratedAssetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGeneratedAssetRepository creates a derived-asset repository backed by PostgreSQL.
func NewGeneratedAssetRepository(pool *pgxpool.Pool) *GeneratedAssetRepositoryPG {
	return &GeneratedAssetRepositoryPG{pool: pool}
}

// Append inserts one derived asset produced by a job run.
func (r *GeneratedAssetRepositoryPG) Append(ctx context.Context, asset *domain.GeneratedAsset) error {
	query := `
INSERT INTO generated_assets (job_id, original_asset_id, asset_format_id, storage_path, file_type, dimensions, is_nsfw, manual_edits)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at;
`
	dims, err := json.Marshal(asset.Dimensions)
	if err != nil {
		return fmt.Errorf("encode dimensions: %w", err)
	}
	row := r.pool.QueryRow(ctx, query,
		asset.JobID,
		asset.OriginalAssetID,
		asset.AssetFormatID,
		asset.StoragePath,
		asset.FileType,
		dims,
		asset.IsNsfw,
		nullableJSON(asset.ManualEdits),
	)
	if err := row.Scan(&asset.ID, &asset.CreatedAt); err != nil {
		return fmt.Errorf("append generated asset: %w", err)
	}
	return nil
}

// ListByJob returns all derived assets for a job in creation order.
func (r *GeneratedAssetRepositoryPG) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.GeneratedAsset, error) {
	query := `
SELECT id, job_id, original_asset_id, asset_format_id, storage_path, file_type, dimensions, is_nsfw, manual_edits, created_at
FROM generated_assets
WHERE job_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.GeneratedAsset
	for rows.Next() {
		asset, err := scanGeneratedAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

// GetByID fetches a single derived asset.
func (r *GeneratedAssetRepositoryPG) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedAsset, error) {
	query := `
SELECT id, job_id, original_asset_id, asset_format_id, storage_path, file_type, dimensions, is_nsfw, manual_edits, created_at
FROM generated_assets
WHERE id = $1;
`
	asset, err := scanGeneratedAsset(r.pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// SetManualEdits overwrites the manual-edit payload of a derived asset.
func (r *GeneratedAssetRepositoryPG) SetManualEdits(ctx context.Context, id uuid.UUID, edits json.RawMessage) error {
	query := `
UPDATE generated_assets
SET manual_edits = $2
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, nullableJSON(edits))
	if err != nil {
		return fmt.Errorf("set manual edits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGeneratedAsset(scan func(dest ...any) error) (*domain.GeneratedAsset, error) {
	var (
		asset domain.GeneratedAsset
		dims  []byte
		edits []byte
	)
	if err := scan(
		&asset.ID,
		&asset.JobID,
		&asset.OriginalAssetID,
		&asset.AssetFormatID,
		&asset.StoragePath,
		&asset.FileType,
		&dims,
		&asset.IsNsfw,
		&edits,
		&asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		if err := json.Unmarshal(dims, &asset.Dimensions); err != nil {
			return nil, fmt.Errorf("decode dimensions: %w", err)
		}
	}
	if len(edits) > 0 {
		asset.ManualEdits = json.RawMessage(edits)
	}
	return &asset, nil
}

func nullableJSON(b json.RawMessage) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

var _ domain.GeneratedAssetRepository = (*GeneratedAssetRepositoryPG)(nil)
