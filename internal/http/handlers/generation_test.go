package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/middleware"
)

func testRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Post("/generate", app.Generate)
	r.Get("/generate/{jobId}/status", app.GenerationStatus)
	r.Get("/generate/{jobId}/results", app.GenerationResults)
	r.Get("/generated-assets/{assetId}", app.GetGeneratedAsset)
	r.Put("/generated-assets/{assetId}", app.UpdateGeneratedAsset)
	r.Post("/download", app.DownloadAssets)
	r.Get("/formats", app.ListFormats)
	r.Get("/projects", app.ListProjects)
	r.Post("/projects/upload", app.UploadProject)
	r.Get("/projects/{projectId}/status", app.ProjectStatus)
	r.Get("/projects/{projectId}/preview", app.ProjectPreview)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.ContextWithUser(context.Background(), userID, "user"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedProject(t *testing.T, env *testEnv, userID uuid.UUID, assetCount int) uuid.UUID {
	t.Helper()
	project := &domain.Project{UserID: userID, Name: "campaign", Status: domain.ProjectStatusReadyForReview}
	require.NoError(t, env.projects.Create(context.Background(), project))
	assets := make([]domain.Asset, assetCount)
	for i := range assets {
		assets[i] = domain.Asset{
			ProjectID:        project.ID,
			OriginalFilename: fmt.Sprintf("hero-%d.png", i),
			StoragePath:      fmt.Sprintf("uploads/%s/hero-%d.png", project.ID, i),
			FileType:         "png",
		}
	}
	require.NoError(t, env.assets.CreateBatch(context.Background(), assets))
	return project.ID
}

func TestGenerateAcceptsAndQueues(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()
	projectID := seedProject(t, env, userID, 2)
	formatID := uuid.New()

	rec := doJSON(t, testRouter(env.app), http.MethodPost, "/generate", map[string]any{
		"projectId": projectID,
		"formatIds": []uuid.UUID{formatID},
	}, userID)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	jobID, err := uuid.Parse(resp["jobId"])
	require.NoError(t, err)

	job, err := env.jobs.GetByID(context.Background(), jobID)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusPending, job.Status)
	require.Equal(t, 0, job.Progress)

	require.Len(t, env.queue.tasks, 1)
	payload := env.queue.tasks[0].Payload
	require.Equal(t, jobID, payload.JobID)
	require.Equal(t, projectID, payload.ProjectID)
	require.Len(t, payload.AssetIDs, 2, "submission snapshots the project's assets")
	require.Equal(t, []uuid.UUID{formatID}, payload.FormatIDs)
}

func TestGenerateRejectsForeignProject(t *testing.T) {
	env := newTestEnv()
	owner := uuid.New()
	projectID := seedProject(t, env, owner, 1)

	rec := doJSON(t, testRouter(env.app), http.MethodPost, "/generate", map[string]any{
		"projectId": projectID,
		"formatIds": []uuid.UUID{uuid.New()},
	}, uuid.New())

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, env.queue.tasks)
}

func TestGenerationStatusOwnership(t *testing.T) {
	env := newTestEnv()
	owner := uuid.New()
	job := &domain.GenerationJob{ProjectID: uuid.New(), UserID: owner, Status: domain.JobStatusProcessing, Progress: 40}
	require.NoError(t, env.jobs.Create(context.Background(), job))

	router := testRouter(env.app)

	rec := doJSON(t, router, http.MethodGet, "/generate/"+job.ID.String()+"/status", nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	var status jobStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "processing", status.Status)
	require.Equal(t, 40, status.Progress)

	rec = doJSON(t, router, http.MethodGet, "/generate/"+job.ID.String()+"/status", nil, uuid.New())
	require.Equal(t, http.StatusNotFound, rec.Code, "foreign jobs look missing")
}

func TestGenerationResultsGroupedByPlatform(t *testing.T) {
	env := newTestEnv()
	userID := uuid.New()

	platform := &domain.RepurposingPlatform{Name: "Instagram"}
	require.NoError(t, env.platforms.Create(context.Background(), platform))

	igFormat := &domain.AssetFormat{
		Name: "IG Square", Type: domain.FormatTypeRepurposing,
		PlatformID: &platform.ID, Width: 1080, Height: 1080, IsActive: true,
	}
	require.NoError(t, env.formats.Create(context.Background(), igFormat))
	plainFormat := &domain.AssetFormat{
		Name: "Banner", Type: domain.FormatTypeResizing, Width: 1200, Height: 300, IsActive: true,
	}
	require.NoError(t, env.formats.Create(context.Background(), plainFormat))

	job := &domain.GenerationJob{ProjectID: uuid.New(), UserID: userID, Status: domain.JobStatusCompleted, Progress: 100}
	require.NoError(t, env.jobs.Create(context.Background(), job))

	sourceID := uuid.New()
	for _, format := range []*domain.AssetFormat{igFormat, plainFormat} {
		fid := format.ID
		require.NoError(t, env.generated.Append(context.Background(), &domain.GeneratedAsset{
			JobID:           job.ID,
			OriginalAssetID: sourceID,
			AssetFormatID:   &fid,
			StoragePath:     fmt.Sprintf("generated/%s.png", fid),
			FileType:        "png",
			Dimensions:      domain.Dimensions{Width: format.Width, Height: format.Height},
		}))
	}

	rec := doJSON(t, testRouter(env.app), http.MethodGet, "/generate/"+job.ID.String()+"/results", nil, userID)
	require.Equal(t, http.StatusOK, rec.Code)

	var grouped map[string][]generatedAssetSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grouped))
	require.Len(t, grouped["Instagram"], 1)
	require.Len(t, grouped["Generic"], 1, "formats without a platform land in the generic bucket")

	ig := grouped["Instagram"][0]
	require.NotNil(t, ig.FormatName)
	require.Equal(t, "IG Square", *ig.FormatName)
	require.Equal(t, 1080, ig.Dimensions.Width)
	require.Contains(t, ig.AssetURL, "http://cdn.local/static/")
}

func TestListFormatsGroupedByType(t *testing.T) {
	env := newTestEnv()
	require.NoError(t, env.formats.Create(context.Background(), &domain.AssetFormat{
		Name: "Banner", Type: domain.FormatTypeResizing, Width: 1200, Height: 300, IsActive: true,
	}))
	require.NoError(t, env.formats.Create(context.Background(), &domain.AssetFormat{
		Name: "Hidden", Type: domain.FormatTypeResizing, Width: 10, Height: 10, IsActive: false,
	}))

	rec := doJSON(t, testRouter(env.app), http.MethodGet, "/formats", nil, uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)

	var grouped map[string][]formatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grouped))
	require.Len(t, grouped["resizing"], 1, "inactive formats are hidden")
	require.Empty(t, grouped["repurposing"])
}
