package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusUploading      ProjectStatus = "uploading"
	ProjectStatusProcessing     ProjectStatus = "processing"
	ProjectStatusReadyForReview ProjectStatus = "ready_for_review"
	ProjectStatusGenerating     ProjectStatus = "generating"
	ProjectStatusCompleted      ProjectStatus = "completed"
	ProjectStatusFailed         ProjectStatus = "failed"
)

// Project owns a batch of uploaded source assets.
type Project struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
