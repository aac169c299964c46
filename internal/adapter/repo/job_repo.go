package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
)

// JobRepositoryPG implements domain.JobRepository.
type JobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(pool *pgxpool.Pool) *JobRepositoryPG {
	return &JobRepositoryPG{pool: pool}
}

// Create inserts a new generation job in pending state with zero progress.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.GenerationJob) error {
	query := `
INSERT INTO generation_jobs (project_id, user_id, status, progress)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at;
`
	if job.Status == "" {
		job.Status = domain.JobStatusPending
	}
	row := r.pool.QueryRow(ctx, query, job.ProjectID, job.UserID, job.Status, job.Progress)
	if err := row.Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return fmt.Errorf("create generation job: %w", err)
	}
	return nil
}

// SetStatus updates the job's lifecycle status and progress.
func (r *JobRepositoryPG) SetStatus(ctx context.Context, jobID uuid.UUID, status domain.JobStatus, progress int) error {
	query := `
UPDATE generation_jobs
SET status = $2,
    progress = $3,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, jobID, status, progress)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a job by its identifier.
func (r *JobRepositoryPG) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.GenerationJob, error) {
	query := `
SELECT id, project_id, user_id, status, progress, created_at, updated_at
FROM generation_jobs
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, jobID)
	var job domain.GenerationJob
	if err := row.Scan(
		&job.ID,
		&job.ProjectID,
		&job.UserID,
		&job.Status,
		&job.Progress,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

var _ domain.JobRepository = (*JobRepositoryPG)(nil)
