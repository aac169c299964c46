package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus enumerates generation job lifecycle states. Transitions are
// pending -> processing -> completed|failed; terminal states are never
// re-entered and there is no retry transition (a retry is a new job).
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// GenerationJob tracks one request to render a project's assets into a set
// of target formats. Progress is 0-100; it only moves forward while the job
// is processing, is forced to 100 on completion and reset to 0 on failure.
type GenerationJob struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Status    JobStatus
	Progress  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskStatus enumerates queue states for a unit of orchestration work.
type TaskStatus string

const (
	TaskStatusQueued  TaskStatus = "QUEUED"
	TaskStatusRunning TaskStatus = "RUNNING"
	TaskStatusDone    TaskStatus = "DONE"
)

// GenerationTask is the durable queue entry that decouples job submission
// from execution. The payload snapshots everything the orchestrator needs so
// a worker can run without revisiting the submission request.
type GenerationTask struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Payload   TaskPayload
	Status    TaskStatus
	CreatedAt time.Time
}

// TaskPayload is the serialized unit of work handed to the worker.
type TaskPayload struct {
	JobID     uuid.UUID   `json:"jobId"`
	ProjectID uuid.UUID   `json:"projectId"`
	AssetIDs  []uuid.UUID `json:"assetIds"`
	FormatIDs []uuid.UUID `json:"formatIds"`
}
