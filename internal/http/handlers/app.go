package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
	"repurpose-backend/internal/middleware"
	"repurpose-backend/internal/storage"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Config    *infra.Config
	Logger    infra.Logger
	Users     domain.UserRepository
	Projects  domain.ProjectRepository
	Assets    domain.AssetRepository
	Jobs      domain.JobRepository
	Generated domain.GeneratedAssetRepository
	Formats   domain.FormatRepository
	Platforms domain.PlatformRepository
	Settings  domain.SettingsRepository
	Styles    domain.StyleRepository
	Queue     domain.TaskQueue
	Store     *storage.FileStore
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorResponse{Error: errCode, Message: msg})
}

func (a *App) currentUserID(r *http.Request) uuid.UUID {
	return middleware.UserIDFromContext(r.Context())
}

// loadJobForUser resolves a job and enforces ownership. A job belonging to a
// different user is indistinguishable from a missing one.
func (a *App) loadJobForUser(ctx context.Context, jobID, userID uuid.UUID) (*domain.GenerationJob, error) {
	job, err := a.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// loadProjectForUser resolves a project and enforces ownership.
func (a *App) loadProjectForUser(ctx context.Context, projectID, userID uuid.UUID) (*domain.Project, error) {
	project, err := a.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return project, nil
}
