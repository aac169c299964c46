package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
)

type formatRequest struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	PlatformID *uuid.UUID `json:"platformId"`
	Category   string     `json:"category"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	IsActive   *bool      `json:"isActive"`
}

// AdminListFormats returns the whole catalog, inactive entries included.
func (a *App) AdminListFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := a.Formats.ListAll(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list formats")
		return
	}
	out := make([]formatResponse, 0, len(formats))
	for _, format := range formats {
		out = append(out, toFormatResponse(format))
	}
	a.json(w, http.StatusOK, out)
}

// AdminCreateFormat adds a catalog entry.
func (a *App) AdminCreateFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Width <= 0 || req.Height <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "name, width and height required")
		return
	}
	formatType := domain.FormatType(req.Type)
	if formatType != domain.FormatTypeResizing && formatType != domain.FormatTypeRepurposing {
		a.error(w, http.StatusBadRequest, "bad_request", "type must be resizing or repurposing")
		return
	}

	format := &domain.AssetFormat{
		Name:       req.Name,
		Type:       formatType,
		PlatformID: req.PlatformID,
		Category:   req.Category,
		Width:      req.Width,
		Height:     req.Height,
		IsActive:   true,
	}
	if err := a.Formats.Create(r.Context(), format); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create format")
		return
	}
	a.json(w, http.StatusCreated, toFormatResponse(*format))
}

// AdminUpdateFormat rewrites a catalog entry.
func (a *App) AdminUpdateFormat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "formatId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid format id")
		return
	}
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	format := &domain.AssetFormat{
		ID:         id,
		Name:       req.Name,
		Type:       domain.FormatType(req.Type),
		PlatformID: req.PlatformID,
		Category:   req.Category,
		Width:      req.Width,
		Height:     req.Height,
		IsActive:   isActive,
	}
	if err := a.Formats.Update(r.Context(), format); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "format not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to update format")
		return
	}
	a.json(w, http.StatusOK, toFormatResponse(*format))
}

// AdminDeleteFormat removes a catalog entry.
func (a *App) AdminDeleteFormat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "formatId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid format id")
		return
	}
	if err := a.Formats.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "format not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete format")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminListPlatforms lists active repurposing platforms.
func (a *App) AdminListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := a.Platforms.ListActive(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list platforms")
		return
	}
	type platformResponse struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	out := make([]platformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, platformResponse{ID: p.ID, Name: p.Name})
	}
	a.json(w, http.StatusOK, out)
}

// AdminCreatePlatform adds a repurposing platform.
func (a *App) AdminCreatePlatform(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	platform := &domain.RepurposingPlatform{Name: req.Name}
	if err := a.Platforms.Create(r.Context(), platform); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create platform")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": platform.ID, "name": platform.Name})
}

// AdminUpdatePlatform rewrites a platform's name and active flag.
func (a *App) AdminUpdatePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "platformId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid platform id")
		return
	}
	var req struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	platform := &domain.RepurposingPlatform{ID: id, Name: req.Name, IsActive: isActive}
	if err := a.Platforms.Update(r.Context(), platform); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "platform not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to update platform")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": platform.ID, "name": platform.Name, "isActive": platform.IsActive})
}

// AdminDeletePlatform removes a platform and its formats.
func (a *App) AdminDeletePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "platformId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid platform id")
		return
	}
	if err := a.Platforms.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "platform not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete platform")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ruleResponse struct {
	RuleKey     string          `json:"ruleKey"`
	RuleValue   json.RawMessage `json:"ruleValue"`
	Description string          `json:"description,omitempty"`
}

// AdminListRules returns every stored behavioral rule.
func (a *App) AdminListRules(w http.ResponseWriter, r *http.Request) {
	settings, err := a.Settings.List(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list rules")
		return
	}
	out := make([]ruleResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, ruleResponse{RuleKey: s.RuleKey, RuleValue: s.RuleValue, Description: s.Description})
	}
	a.json(w, http.StatusOK, out)
}

// AdminGetRule returns one rule by key. Well-known keys without a stored row
// are served from their built-in defaults; only unknown keys are 404.
func (a *App) AdminGetRule(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "ruleKey")
	setting, err := a.Settings.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if value, ok := domain.DefaultRuleValue(key); ok {
				a.json(w, http.StatusOK, ruleResponse{RuleKey: key, RuleValue: value})
				return
			}
			a.error(w, http.StatusNotFound, "not_found", "rule not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load rule")
		return
	}
	a.json(w, http.StatusOK, ruleResponse{RuleKey: setting.RuleKey, RuleValue: setting.RuleValue, Description: setting.Description})
}

// AdminSetRule upserts one rule document.
func (a *App) AdminSetRule(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "ruleKey")
	var req struct {
		RuleValue   json.RawMessage `json:"ruleValue"`
		Description string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.RuleValue) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "ruleValue required")
		return
	}
	if err := a.Settings.Set(r.Context(), key, req.RuleValue, req.Description); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to store rule")
		return
	}
	a.json(w, http.StatusOK, ruleResponse{RuleKey: key, RuleValue: req.RuleValue, Description: req.Description})
}

type styleSetRequest struct {
	Name     string          `json:"name"`
	Styles   json.RawMessage `json:"styles"`
	IsActive *bool           `json:"isActive"`
}

type styleSetResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Styles   json.RawMessage `json:"styles"`
	IsActive bool            `json:"isActive"`
}

// AdminListStyleSets lists text-style presets.
func (a *App) AdminListStyleSets(w http.ResponseWriter, r *http.Request) {
	sets, err := a.Styles.List(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list style sets")
		return
	}
	out := make([]styleSetResponse, 0, len(sets))
	for _, s := range sets {
		out = append(out, styleSetResponse{ID: s.ID, Name: s.Name, Styles: s.Styles, IsActive: s.IsActive})
	}
	a.json(w, http.StatusOK, out)
}

// AdminCreateStyleSet adds a text-style preset.
func (a *App) AdminCreateStyleSet(w http.ResponseWriter, r *http.Request) {
	var req styleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || len(req.Styles) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "name and styles required")
		return
	}
	set := &domain.TextStyleSet{Name: req.Name, Styles: req.Styles}
	if err := a.Styles.Create(r.Context(), set); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create style set")
		return
	}
	a.json(w, http.StatusCreated, styleSetResponse{ID: set.ID, Name: set.Name, Styles: set.Styles, IsActive: set.IsActive})
}

// AdminUpdateStyleSet rewrites a text-style preset.
func (a *App) AdminUpdateStyleSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "styleSetId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid style set id")
		return
	}
	var req styleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || len(req.Styles) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "name and styles required")
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	set := &domain.TextStyleSet{ID: id, Name: req.Name, Styles: req.Styles, IsActive: isActive}
	if err := a.Styles.Update(r.Context(), set); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "style set not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to update style set")
		return
	}
	a.json(w, http.StatusOK, styleSetResponse{ID: set.ID, Name: set.Name, Styles: set.Styles, IsActive: set.IsActive})
}

// AdminDeleteStyleSet removes a text-style preset.
func (a *App) AdminDeleteStyleSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "styleSetId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid style set id")
		return
	}
	if err := a.Styles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "style set not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete style set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
