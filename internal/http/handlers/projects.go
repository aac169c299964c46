package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/moderation"
)

type projectResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Status     string         `json:"status"`
	SubmitDate time.Time      `json:"submitDate"`
	FileCounts map[string]int `json:"fileCounts"`
}

type projectStatusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

type assetPreview struct {
	ID         uuid.UUID            `json:"id"`
	Filename   string               `json:"filename"`
	PreviewURL string               `json:"previewUrl"`
	Metadata   assetPreviewMetadata `json:"metadata"`
}

type assetPreviewMetadata struct {
	Width            *int     `json:"width"`
	Height           *int     `json:"height"`
	DPI              *int     `json:"dpi"`
	DetectedElements []string `json:"detectedElements,omitempty"`
}

// ListProjects returns the caller's projects with per-type file counts.
func (a *App) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	projects, err := a.Projects.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list projects")
		return
	}

	results := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		counts := map[string]int{"psd": 0, "jpg": 0, "png": 0}
		assets, err := a.Assets.ListByProject(r.Context(), p.ID)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to list assets")
			return
		}
		for _, asset := range assets {
			ext := strings.ToLower(asset.FileType)
			if _, ok := counts[ext]; ok {
				counts[ext]++
			}
		}
		results = append(results, projectResponse{
			ID:         p.ID,
			Name:       p.Name,
			Status:     string(p.Status),
			SubmitDate: p.CreatedAt,
			FileCounts: counts,
		})
	}
	a.json(w, http.StatusOK, results)
}

// UploadProject creates a project from a multipart upload. File type and
// size limits come from the moderation_limits rule, falling back to config
// defaults when the rule is absent.
func (a *App) UploadProject(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	limits := a.moderationLimits(r)
	maxBytes := int64(limits.MaxSizeMB) * 1024 * 1024
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	projectName := strings.TrimSpace(r.FormValue("projectName"))
	if projectName == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "projectName required")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one file required")
		return
	}
	if len(files) > limits.MaxFiles {
		a.error(w, http.StatusBadRequest, "too_many_files", fmt.Sprintf("at most %d files per upload", limits.MaxFiles))
		return
	}

	project := &domain.Project{UserID: userID, Name: projectName, Status: domain.ProjectStatusUploading}
	if err := a.Projects.Create(r.Context(), project); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create project")
		return
	}

	assets := make([]domain.Asset, 0, len(files))
	for _, header := range files {
		if !moderation.AllowedFileType(header.Filename, limits.AllowedTypes) {
			a.error(w, http.StatusBadRequest, "unsupported_type", fmt.Sprintf("file type of %q not allowed", header.Filename))
			return
		}
		if !moderation.WithinSizeLimit(header.Size, limits.MaxSizeMB) {
			a.error(w, http.StatusBadRequest, "file_too_large", fmt.Sprintf("%q exceeds %d MB", header.Filename, limits.MaxSizeMB))
			return
		}

		file, err := header.Open()
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to read upload")
			return
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to read upload")
			return
		}

		key := fmt.Sprintf("uploads/%s/%s", project.ID, header.Filename)
		storedKey, err := a.Store.Write(r.Context(), key, content)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
			return
		}
		if limits.NsfwAlertsActive && moderation.NsfwCheck(storedKey) {
			a.error(w, http.StatusBadRequest, "nsfw_content", fmt.Sprintf("%q was flagged by content moderation", header.Filename))
			return
		}

		assets = append(assets, domain.Asset{
			ProjectID:        project.ID,
			OriginalFilename: header.Filename,
			StoragePath:      storedKey,
			FileType:         fileExtension(header.Filename),
			FileSizeBytes:    header.Size,
		})
	}

	if err := a.Assets.CreateBatch(r.Context(), assets); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to record assets")
		return
	}
	if err := a.Projects.SetStatus(r.Context(), project.ID, domain.ProjectStatusReadyForReview); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update project")
		return
	}

	a.json(w, http.StatusAccepted, map[string]string{"projectId": project.ID.String()})
}

// ProjectStatus reports the project's coarse upload/processing progress.
func (a *App) ProjectStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}
	project, err := a.loadProjectForUser(r.Context(), projectID, userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return
	}
	progress := 100
	if project.Status == domain.ProjectStatusProcessing || project.Status == domain.ProjectStatusReadyForReview {
		progress = 60
	}
	a.json(w, http.StatusOK, projectStatusResponse{Status: string(project.Status), Progress: progress})
}

// ProjectPreview lists a project's source assets with display metadata.
func (a *App) ProjectPreview(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == uuid.Nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}
	if _, err := a.loadProjectForUser(r.Context(), projectID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	assets, err := a.Assets.ListByProject(r.Context(), projectID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list assets")
		return
	}

	previews := make([]assetPreview, 0, len(assets))
	for _, asset := range assets {
		meta := assetPreviewMetadata{DPI: asset.DPI}
		if asset.Dimensions != nil {
			width, height := asset.Dimensions.Width, asset.Dimensions.Height
			meta.Width = &width
			meta.Height = &height
		}
		if len(asset.AIMetadata) > 0 {
			var parsed struct {
				DetectedElements []string `json:"detectedElements"`
			}
			if err := json.Unmarshal(asset.AIMetadata, &parsed); err == nil {
				meta.DetectedElements = parsed.DetectedElements
			}
		}
		previews = append(previews, assetPreview{
			ID:         asset.ID,
			Filename:   asset.OriginalFilename,
			PreviewURL: a.assetURL(asset.StoragePath),
			Metadata:   meta,
		})
	}
	a.json(w, http.StatusOK, previews)
}

func (a *App) moderationLimits(r *http.Request) domain.ModerationLimits {
	limits := domain.ModerationLimits{
		AllowedTypes: []string{"psd", "jpg", "jpeg", "png"},
		MaxFiles:     a.Config.UploadMaxFiles,
		MaxSizeMB:    a.Config.UploadMaxMB,
	}
	setting, err := a.Settings.Get(r.Context(), domain.RuleKeyModerationLimits)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.Logger.Warn().Err(err).Msg("handlers: moderation rule lookup failed, using defaults")
		}
		return limits
	}
	var rule struct {
		AllowedTypes     []string `json:"allowedTypes"`
		MaxFiles         int      `json:"maxFiles"`
		MaxSizeMB        int      `json:"maxSizeMb"`
		NsfwAlertsActive *bool    `json:"nsfwAlertsActive"`
	}
	if err := json.Unmarshal(setting.RuleValue, &rule); err != nil {
		return limits
	}
	if len(rule.AllowedTypes) > 0 {
		limits.AllowedTypes = rule.AllowedTypes
	}
	if rule.MaxFiles > 0 {
		limits.MaxFiles = rule.MaxFiles
	}
	if rule.MaxSizeMB > 0 {
		limits.MaxSizeMB = rule.MaxSizeMB
	}
	if rule.NsfwAlertsActive != nil {
		limits.NsfwAlertsActive = *rule.NsfwAlertsActive
	}
	return limits
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "png"
	}
	return strings.ToLower(filename[idx+1:])
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}
