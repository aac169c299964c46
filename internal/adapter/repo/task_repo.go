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

// TaskQueuePG implements domain.TaskQueue on top of a generation_tasks
// table. Claim uses FOR UPDATE SKIP LOCKED so concurrent workers never pick
// the same task, which also guarantees a single writer per job row.
type TaskQueuePG struct {
	pool *pgxpool.Pool
}

// NewTaskQueue creates a durable task queue backed by PostgreSQL.
func NewTaskQueue(pool *pgxpool.Pool) *TaskQueuePG {
	return &TaskQueuePG{pool: pool}
}

// ErrNoTask is returned by Claim when the queue is empty.
var ErrNoTask = fmt.Errorf("no task available")

// Enqueue appends a unit of orchestration work. It is a single insert and
// never waits on execution.
func (q *TaskQueuePG) Enqueue(ctx context.Context, task *domain.GenerationTask) error {
	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("encode task payload: %w", err)
	}
	query := `
INSERT INTO generation_tasks (job_id, payload, status)
VALUES ($1, $2, 'QUEUED')
RETURNING id, created_at;
`
	row := q.pool.QueryRow(ctx, query, task.JobID, payload)
	if err := row.Scan(&task.ID, &task.CreatedAt); err != nil {
		return fmt.Errorf("enqueue generation task: %w", err)
	}
	task.Status = domain.TaskStatusQueued
	return nil
}

// Claim atomically hands the oldest queued task to the calling worker.
// Returns ErrNoTask when nothing is queued.
func (q *TaskQueuePG) Claim(ctx context.Context) (*domain.GenerationTask, error) {
	query := `
WITH next_task AS (
    SELECT id
    FROM generation_tasks
    WHERE status = 'QUEUED'
    ORDER BY created_at ASC
    FOR UPDATE SKIP LOCKED
    LIMIT 1
),
claimed AS (
    UPDATE generation_tasks
    SET status = 'RUNNING', updated_at = NOW()
    WHERE id IN (SELECT id FROM next_task)
    RETURNING id, job_id, payload, created_at
)
SELECT id, job_id, payload, created_at FROM claimed;
`
	row := q.pool.QueryRow(ctx, query)
	var task domain.GenerationTask
	var payload []byte
	if err := row.Scan(&task.ID, &task.JobID, &payload, &task.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, ErrNoTask
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &task.Payload); err != nil {
		return nil, fmt.Errorf("decode task payload: %w", err)
	}
	task.Status = domain.TaskStatusRunning
	return &task, nil
}

// Complete marks a claimed task consumed. The worker calls this whether or
// not the run succeeded; failed jobs are not requeued.
func (q *TaskQueuePG) Complete(ctx context.Context, taskID uuid.UUID) error {
	query := `
UPDATE generation_tasks
SET status = 'DONE', updated_at = NOW()
WHERE id = $1;
`
	tag, err := q.pool.Exec(ctx, query, taskID)
	if err != nil {
		return fmt.Errorf("complete generation task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.TaskQueue = (*TaskQueuePG)(nil)
