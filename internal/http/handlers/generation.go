package handlers

import (
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
)

// genericPlatform is the results bucket for formats without a platform.
const genericPlatform = "Generic"

type customResize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type generateRequest struct {
	ProjectID     uuid.UUID      `json:"projectId"`
	FormatIDs     []uuid.UUID    `json:"formatIds"`
	CustomResizes []customResize `json:"customResizes,omitempty"`
}

type jobStatusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type generatedAssetSummary struct {
	ID              uuid.UUID         `json:"id"`
	OriginalAssetID uuid.UUID         `json:"originalAssetId"`
	Filename        string            `json:"filename"`
	AssetURL        string            `json:"assetUrl"`
	PlatformName    *string           `json:"platformName"`
	FormatName      *string           `json:"formatName"`
	Dimensions      domain.Dimensions `json:"dimensions"`
	IsNsfw          bool              `json:"isNsfw"`
}

// Generate accepts a generation request, records the job in pending state
// and enqueues orchestration work. It returns the job id immediately; the
// job is visible to status polls before processing begins.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProjectID == uuid.Nil {
		a.error(w, http.StatusBadRequest, "bad_request", "projectId required")
		return
	}

	if _, err := a.loadProjectForUser(r.Context(), req.ProjectID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	job := &domain.GenerationJob{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Status:    domain.JobStatusPending,
		Progress:  0,
	}
	if err := a.Jobs.Create(r.Context(), job); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create job")
		return
	}

	// Snapshot the project's source assets now so the worker runs against a
	// fixed input set.
	assetIDs, err := a.Assets.IDsByProject(r.Context(), req.ProjectID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to resolve project assets")
		return
	}

	task := &domain.GenerationTask{
		JobID: job.ID,
		Payload: domain.TaskPayload{
			JobID:     job.ID,
			ProjectID: req.ProjectID,
			AssetIDs:  assetIDs,
			FormatIDs: req.FormatIDs,
		},
	}
	if err := a.Queue.Enqueue(r.Context(), task); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}

	a.json(w, http.StatusAccepted, map[string]string{"jobId": job.ID.String()})
}

// GenerationStatus returns the job's current status and progress snapshot.
func (a *App) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid job id")
		return
	}
	job, err := a.loadJobForUser(r.Context(), jobID, userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	a.json(w, http.StatusOK, jobStatusResponse{Status: string(job.Status), Progress: job.Progress})
}

// GenerationResults returns the job's derived assets grouped by platform
// name, with a generic bucket for formats that have none.
func (a *App) GenerationResults(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID, err := uuid.Parse(chi.URLParam(r, "jobId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid job id")
		return
	}
	if _, err := a.loadJobForUser(r.Context(), jobID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}

	assets, err := a.Generated.ListByJob(r.Context(), jobID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load results")
		return
	}

	grouped, err := a.groupByPlatform(r, assets)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to shape results")
		return
	}
	a.json(w, http.StatusOK, grouped)
}

func (a *App) groupByPlatform(r *http.Request, assets []domain.GeneratedAsset) (map[string][]generatedAssetSummary, error) {
	formatIDs := make([]uuid.UUID, 0, len(assets))
	seen := make(map[uuid.UUID]bool)
	for _, asset := range assets {
		if asset.AssetFormatID != nil && !seen[*asset.AssetFormatID] {
			seen[*asset.AssetFormatID] = true
			formatIDs = append(formatIDs, *asset.AssetFormatID)
		}
	}
	formats, err := a.Formats.Resolve(r.Context(), formatIDs)
	if err != nil {
		return nil, err
	}

	platformIDs := make([]uuid.UUID, 0, len(formats))
	seenPlatforms := make(map[uuid.UUID]bool)
	for _, format := range formats {
		if format.PlatformID != nil && !seenPlatforms[*format.PlatformID] {
			seenPlatforms[*format.PlatformID] = true
			platformIDs = append(platformIDs, *format.PlatformID)
		}
	}
	platformNames, err := a.Platforms.NamesByID(r.Context(), platformIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]generatedAssetSummary)
	for _, asset := range assets {
		summary := a.summarize(asset, formats, platformNames)
		bucket := genericPlatform
		if summary.PlatformName != nil {
			bucket = *summary.PlatformName
		}
		grouped[bucket] = append(grouped[bucket], summary)
	}
	return grouped, nil
}

func (a *App) summarize(asset domain.GeneratedAsset, formats map[uuid.UUID]domain.AssetFormat, platformNames map[uuid.UUID]string) generatedAssetSummary {
	summary := generatedAssetSummary{
		ID:              asset.ID,
		OriginalAssetID: asset.OriginalAssetID,
		Filename:        path.Base(asset.StoragePath),
		AssetURL:        a.assetURL(asset.StoragePath),
		Dimensions:      asset.Dimensions,
		IsNsfw:          asset.IsNsfw,
	}
	if asset.AssetFormatID == nil {
		return summary
	}
	format, ok := formats[*asset.AssetFormatID]
	if !ok {
		return summary
	}
	name := format.Name
	summary.FormatName = &name
	if format.PlatformID != nil {
		if platformName, ok := platformNames[*format.PlatformID]; ok {
			summary.PlatformName = &platformName
		}
	}
	return summary
}

func (a *App) assetURL(storagePath string) string {
	base := strings.TrimRight(a.Config.StorageBaseURL, "/")
	return base + "/" + strings.TrimLeft(storagePath, "/")
}
