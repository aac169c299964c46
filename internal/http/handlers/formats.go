package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
)

type formatResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	PlatformID *uuid.UUID `json:"platformId"`
	Category   string     `json:"category,omitempty"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	IsActive   bool       `json:"isActive"`
}

// ListFormats returns active catalog entries partitioned into resizing and
// repurposing groups.
func (a *App) ListFormats(w http.ResponseWriter, r *http.Request) {
	if a.currentUserID(r) == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	formats, err := a.Formats.ListActive(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list formats")
		return
	}

	grouped := map[string][]formatResponse{
		"resizing":    {},
		"repurposing": {},
	}
	for _, format := range formats {
		grouped[string(format.Type)] = append(grouped[string(format.Type)], toFormatResponse(format))
	}
	a.json(w, http.StatusOK, grouped)
}

func toFormatResponse(format domain.AssetFormat) formatResponse {
	return formatResponse{
		ID:         format.ID,
		Name:       format.Name,
		Type:       string(format.Type),
		PlatformID: format.PlatformID,
		Category:   format.Category,
		Width:      format.Width,
		Height:     format.Height,
		IsActive:   format.IsActive,
	}
}
