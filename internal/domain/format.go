package domain

import (
	"time"

	"github.com/google/uuid"
)

// FormatType partitions the catalog into plain resizes and platform-bound
// repurposing targets.
type FormatType string

const (
	FormatTypeResizing    FormatType = "resizing"
	FormatTypeRepurposing FormatType = "repurposing"
)

// AssetFormat is a catalog entry defining a named output's pixel dimensions
// and classification. The orchestrator treats descriptors as immutable for
// the duration of a job run.
type AssetFormat struct {
	ID         uuid.UUID
	Name       string
	Type       FormatType
	PlatformID *uuid.UUID
	Category   string
	Width      int
	Height     int
	IsActive   bool
	CreatedAt  time.Time
}

// RepurposingPlatform is an admin-managed grouping for repurposing formats.
type RepurposingPlatform struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
