package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Dimensions is a width/height pixel pair stored as jsonb.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Asset is a source file uploaded into a project.
type Asset struct {
	ID               uuid.UUID
	ProjectID        uuid.UUID
	OriginalFilename string
	StoragePath      string
	FileType         string
	FileSizeBytes    int64
	Dimensions       *Dimensions
	DPI              *int
	AIMetadata       json.RawMessage
	CreatedAt        time.Time
}

// GeneratedAsset is a rendered output tied to one source asset and one
// target format. Rows are appended only by the orchestrator during a job
// run; afterwards only the manual-edit payload may change.
type GeneratedAsset struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	OriginalAssetID uuid.UUID
	AssetFormatID   *uuid.UUID
	StoragePath     string
	FileType        string
	Dimensions      Dimensions
	IsNsfw          bool
	ManualEdits     json.RawMessage
	CreatedAt       time.Time
}
