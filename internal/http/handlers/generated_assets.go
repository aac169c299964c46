package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
	"repurpose-backend/pkg/zip"
)

type editRequest struct {
	Edits json.RawMessage `json:"edits"`
}

type downloadRequest struct {
	AssetIDs []uuid.UUID `json:"assetIds"`
	Format   string      `json:"format"`
	Quality  string      `json:"quality"`
	Grouping string      `json:"grouping"`
}

// GetGeneratedAsset returns one derived asset's display summary.
func (a *App) GetGeneratedAsset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	asset, ok := a.loadGeneratedAssetForUser(w, r, userID)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, a.singleSummary(r, *asset))
}

// UpdateGeneratedAsset overwrites a derived asset's manual-edit payload.
// The operation is gated by the manual_editing rule (enabled by default).
func (a *App) UpdateGeneratedAsset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if !a.manualEditingEnabled(r) {
		a.error(w, http.StatusForbidden, "editing_disabled", "manual editing is disabled")
		return
	}
	asset, ok := a.loadGeneratedAssetForUser(w, r, userID)
	if !ok {
		return
	}
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Edits) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Generated.SetManualEdits(r.Context(), asset.ID, req.Edits); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to store edits")
		return
	}
	asset.ManualEdits = req.Edits
	a.json(w, http.StatusOK, a.singleSummary(r, *asset))
}

// DownloadAssets packs the requested derived assets into a zip archive.
// Grouping "category" places each file under a folder named after its
// format; other groupings produce a flat archive.
func (a *App) DownloadAssets(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.AssetIDs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	var entries []zip.Asset
	for _, assetID := range req.AssetIDs {
		asset, err := a.Generated.GetByID(r.Context(), assetID)
		if err != nil {
			a.error(w, http.StatusNotFound, "not_found", "generated asset not found")
			return
		}
		if _, err := a.loadJobForUser(r.Context(), asset.JobID, userID); err != nil {
			a.error(w, http.StatusNotFound, "not_found", "generated asset not found")
			return
		}

		data, err := a.Store.Read(r.Context(), asset.StoragePath)
		if err != nil {
			// Rendered output may live behind a remote URL in some provider
			// setups; fall back to the reference so the archive stays whole.
			data = []byte(a.assetURL(asset.StoragePath))
		}
		entry := zip.Asset{
			Filename: fmt.Sprintf("%s.%s", asset.ID, asset.FileType),
			Data:     data,
		}
		if req.Grouping == "category" {
			entry.Group = a.formatNameFor(r, asset)
		}
		entries = append(entries, entry)
	}

	archive := zip.ArchiveAssets(entries)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename=generated-assets.zip`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) loadGeneratedAssetForUser(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*domain.GeneratedAsset, bool) {
	assetID, err := uuid.Parse(chi.URLParam(r, "assetId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid asset id")
		return nil, false
	}
	asset, err := a.Generated.GetByID(r.Context(), assetID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "generated asset not found")
		return nil, false
	}
	if _, err := a.loadJobForUser(r.Context(), asset.JobID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "generated asset not found")
		return nil, false
	}
	return asset, true
}

func (a *App) singleSummary(r *http.Request, asset domain.GeneratedAsset) generatedAssetSummary {
	formats := map[uuid.UUID]domain.AssetFormat{}
	platformNames := map[uuid.UUID]string{}
	if asset.AssetFormatID != nil {
		resolved, err := a.Formats.Resolve(r.Context(), []uuid.UUID{*asset.AssetFormatID})
		if err == nil {
			formats = resolved
			if format, ok := resolved[*asset.AssetFormatID]; ok && format.PlatformID != nil {
				if names, err := a.Platforms.NamesByID(r.Context(), []uuid.UUID{*format.PlatformID}); err == nil {
					platformNames = names
				}
			}
		}
	}
	return a.summarize(asset, formats, platformNames)
}

func (a *App) formatNameFor(r *http.Request, asset *domain.GeneratedAsset) string {
	if asset.AssetFormatID == nil {
		return genericPlatform
	}
	resolved, err := a.Formats.Resolve(r.Context(), []uuid.UUID{*asset.AssetFormatID})
	if err != nil {
		return genericPlatform
	}
	if format, ok := resolved[*asset.AssetFormatID]; ok {
		return format.Name
	}
	return genericPlatform
}

func (a *App) manualEditingEnabled(r *http.Request) bool {
	setting, err := a.Settings.Get(r.Context(), domain.RuleKeyManualEditing)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.Logger.Warn().Err(err).Msg("handlers: manual-editing rule lookup failed, edits allowed")
		}
		return true
	}
	var rule domain.ManualEditingRule
	if err := json.Unmarshal(setting.RuleValue, &rule); err != nil {
		return true
	}
	return rule.Enabled
}
