package domain

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// JobRepository is the Job Store contract. SetStatus is the only mutation
// after creation; jobs are retained for audit and never deleted here.
type JobRepository interface {
	Create(ctx context.Context, job *GenerationJob) error
	SetStatus(ctx context.Context, jobID uuid.UUID, status JobStatus, progress int) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*GenerationJob, error)
}

// GeneratedAssetRepository is the Derived Asset Store contract. Rows are
// append-only during a job run.
type GeneratedAssetRepository interface {
	Append(ctx context.Context, asset *GeneratedAsset) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]GeneratedAsset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*GeneratedAsset, error)
	SetManualEdits(ctx context.Context, id uuid.UUID, edits json.RawMessage) error
}

// FormatRepository exposes the format catalog. Resolve is a batch lookup;
// unresolved ids are simply absent from the result, never an error.
type FormatRepository interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]AssetFormat, error)
	ListActive(ctx context.Context) ([]AssetFormat, error)
	ListAll(ctx context.Context) ([]AssetFormat, error)
	Create(ctx context.Context, format *AssetFormat) error
	Update(ctx context.Context, format *AssetFormat) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlatformRepository manages repurposing platforms and resolves their
// display names for result grouping.
type PlatformRepository interface {
	NamesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListActive(ctx context.Context) ([]RepurposingPlatform, error)
	Create(ctx context.Context, platform *RepurposingPlatform) error
	Update(ctx context.Context, platform *RepurposingPlatform) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository manages projects and their ownership.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Project, error)
	SetStatus(ctx context.Context, id uuid.UUID, status ProjectStatus) error
}

// AssetRepository manages source assets.
type AssetRepository interface {
	CreateBatch(ctx context.Context, assets []Asset) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Asset, error)
	IDsByProject(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
}

// SettingsRepository is the key/value rule store. Get returns ErrNotFound
// for absent keys; callers apply their own defaults.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*AppSetting, error)
	Set(ctx context.Context, key string, value json.RawMessage, description string) error
	List(ctx context.Context) ([]AppSetting, error)
}

// StyleRepository manages admin text-style presets.
type StyleRepository interface {
	List(ctx context.Context) ([]TextStyleSet, error)
	Create(ctx context.Context, set *TextStyleSet) error
	Update(ctx context.Context, set *TextStyleSet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaskQueue is the durable work queue between submission and execution.
// Enqueue must not block on execution; Claim hands a queued task to exactly
// one worker; Complete marks it consumed regardless of the run's outcome so
// the queue never retries on its own.
type TaskQueue interface {
	Enqueue(ctx context.Context, task *GenerationTask) error
	Claim(ctx context.Context) (*GenerationTask, error)
	Complete(ctx context.Context, taskID uuid.UUID) error
}

// UserRepository resolves users for ownership and role checks and stores
// per-user preferences.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	SetPreferences(ctx context.Context, id uuid.UUID, preferences json.RawMessage) error
}
