package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
)

// In-memory stores backing handler tests. They mirror the PG adapters'
// contracts, including ErrNotFound on misses.

type memProjects struct {
	items map[uuid.UUID]domain.Project
}

func newMemProjects() *memProjects {
	return &memProjects{items: map[uuid.UUID]domain.Project{}}
}

func (m *memProjects) Create(ctx context.Context, project *domain.Project) error {
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	m.items[project.ID] = *project
	return nil
}

func (m *memProjects) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memProjects) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range m.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) SetStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	p, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	m.items[id] = p
	return nil
}

type memAssets struct {
	items map[uuid.UUID]domain.Asset
	order []uuid.UUID
}

func newMemAssets() *memAssets {
	return &memAssets{items: map[uuid.UUID]domain.Asset{}}
}

func (m *memAssets) CreateBatch(ctx context.Context, assets []domain.Asset) error {
	for i := range assets {
		assets[i].ID = uuid.New()
		m.items[assets[i].ID] = assets[i]
		m.order = append(m.order, assets[i].ID)
	}
	return nil
}

func (m *memAssets) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Asset, error) {
	var out []domain.Asset
	for _, id := range m.order {
		if a := m.items[id]; a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssets) IDsByProject(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, id := range m.order {
		if m.items[id].ProjectID == projectID {
			out = append(out, id)
		}
	}
	return out, nil
}

type memJobs struct {
	items map[uuid.UUID]domain.GenerationJob
}

func newMemJobs() *memJobs {
	return &memJobs{items: map[uuid.UUID]domain.GenerationJob{}}
}

func (m *memJobs) Create(ctx context.Context, job *domain.GenerationJob) error {
	job.ID = uuid.New()
	job.CreatedAt = time.Now()
	m.items[job.ID] = *job
	return nil
}

func (m *memJobs) SetStatus(ctx context.Context, jobID uuid.UUID, status domain.JobStatus, progress int) error {
	j, ok := m.items[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = status
	j.Progress = progress
	m.items[jobID] = j
	return nil
}

func (m *memJobs) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.GenerationJob, error) {
	j, ok := m.items[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

type memGenerated struct {
	items map[uuid.UUID]domain.GeneratedAsset
	order []uuid.UUID
}

func newMemGenerated() *memGenerated {
	return &memGenerated{items: map[uuid.UUID]domain.GeneratedAsset{}}
}

func (m *memGenerated) Append(ctx context.Context, asset *domain.GeneratedAsset) error {
	asset.ID = uuid.New()
	asset.CreatedAt = time.Now()
	m.items[asset.ID] = *asset
	m.order = append(m.order, asset.ID)
	return nil
}

func (m *memGenerated) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.GeneratedAsset, error) {
	var out []domain.GeneratedAsset
	for _, id := range m.order {
		if a := m.items[id]; a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memGenerated) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedAsset, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memGenerated) SetManualEdits(ctx context.Context, id uuid.UUID, edits json.RawMessage) error {
	a, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ManualEdits = edits
	m.items[id] = a
	return nil
}

type memFormats struct {
	items map[uuid.UUID]domain.AssetFormat
}

func newMemFormats() *memFormats {
	return &memFormats{items: map[uuid.UUID]domain.AssetFormat{}}
}

func (m *memFormats) Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AssetFormat, error) {
	out := make(map[uuid.UUID]domain.AssetFormat)
	for _, id := range ids {
		if f, ok := m.items[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (m *memFormats) ListActive(ctx context.Context) ([]domain.AssetFormat, error) {
	var out []domain.AssetFormat
	for _, f := range m.items {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFormats) ListAll(ctx context.Context) ([]domain.AssetFormat, error) {
	var out []domain.AssetFormat
	for _, f := range m.items {
		out = append(out, f)
	}
	return out, nil
}

func (m *memFormats) Create(ctx context.Context, format *domain.AssetFormat) error {
	format.ID = uuid.New()
	m.items[format.ID] = *format
	return nil
}

func (m *memFormats) Update(ctx context.Context, format *domain.AssetFormat) error {
	if _, ok := m.items[format.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[format.ID] = *format
	return nil
}

func (m *memFormats) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memPlatforms struct {
	items map[uuid.UUID]domain.RepurposingPlatform
}

func newMemPlatforms() *memPlatforms {
	return &memPlatforms{items: map[uuid.UUID]domain.RepurposingPlatform{}}
}

func (m *memPlatforms) NamesByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if p, ok := m.items[id]; ok {
			out[id] = p.Name
		}
	}
	return out, nil
}

func (m *memPlatforms) ListActive(ctx context.Context) ([]domain.RepurposingPlatform, error) {
	var out []domain.RepurposingPlatform
	for _, p := range m.items {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPlatforms) Create(ctx context.Context, platform *domain.RepurposingPlatform) error {
	platform.ID = uuid.New()
	platform.IsActive = true
	m.items[platform.ID] = *platform
	return nil
}

func (m *memPlatforms) Update(ctx context.Context, platform *domain.RepurposingPlatform) error {
	if _, ok := m.items[platform.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[platform.ID] = *platform
	return nil
}

func (m *memPlatforms) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memSettings struct {
	items  map[string]domain.AppSetting
	getErr error
}

func newMemSettings() *memSettings {
	return &memSettings{items: map[string]domain.AppSetting{}}
}

func (m *memSettings) Get(ctx context.Context, key string) (*domain.AppSetting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.items[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memSettings) Set(ctx context.Context, key string, value json.RawMessage, description string) error {
	m.items[key] = domain.AppSetting{RuleKey: key, RuleValue: value, Description: description, UpdatedAt: time.Now()}
	return nil
}

func (m *memSettings) List(ctx context.Context) ([]domain.AppSetting, error) {
	var out []domain.AppSetting
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}

type memStyles struct {
	items map[uuid.UUID]domain.TextStyleSet
}

func newMemStyles() *memStyles {
	return &memStyles{items: map[uuid.UUID]domain.TextStyleSet{}}
}

func (m *memStyles) List(ctx context.Context) ([]domain.TextStyleSet, error) {
	var out []domain.TextStyleSet
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStyles) Create(ctx context.Context, set *domain.TextStyleSet) error {
	set.ID = uuid.New()
	set.IsActive = true
	m.items[set.ID] = *set
	return nil
}

func (m *memStyles) Update(ctx context.Context, set *domain.TextStyleSet) error {
	if _, ok := m.items[set.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[set.ID] = *set
	return nil
}

func (m *memStyles) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memQueue struct {
	tasks []domain.GenerationTask
	done  []uuid.UUID
}

func newMemQueue() *memQueue { return &memQueue{} }

func (m *memQueue) Enqueue(ctx context.Context, task *domain.GenerationTask) error {
	task.ID = uuid.New()
	task.Status = domain.TaskStatusQueued
	task.CreatedAt = time.Now()
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *memQueue) Claim(ctx context.Context) (*domain.GenerationTask, error) {
	for i, t := range m.tasks {
		if t.Status == domain.TaskStatusQueued {
			m.tasks[i].Status = domain.TaskStatusRunning
			claimed := m.tasks[i]
			return &claimed, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memQueue) Complete(ctx context.Context, taskID uuid.UUID) error {
	m.done = append(m.done, taskID)
	return nil
}

type memUsers struct {
	items map[uuid.UUID]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[uuid.UUID]domain.User{}}
}

func (m *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) SetPreferences(ctx context.Context, id uuid.UUID, preferences json.RawMessage) error {
	u, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Preferences = preferences
	m.items[id] = u
	return nil
}

type testEnv struct {
	app       *App
	users     *memUsers
	projects  *memProjects
	assets    *memAssets
	jobs      *memJobs
	generated *memGenerated
	formats   *memFormats
	platforms *memPlatforms
	settings  *memSettings
	styles    *memStyles
	queue     *memQueue
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:     newMemUsers(),
		projects:  newMemProjects(),
		assets:    newMemAssets(),
		jobs:      newMemJobs(),
		generated: newMemGenerated(),
		formats:   newMemFormats(),
		platforms: newMemPlatforms(),
		settings:  newMemSettings(),
		styles:    newMemStyles(),
		queue:     newMemQueue(),
	}
	env.app = &App{
		Config: &infra.Config{
			StorageBaseURL:  "http://cdn.local/static",
			JWTSecret:       "test-secret",
			RateLimitPerMin: 30,
			UploadMaxFiles:  20,
			UploadMaxMB:     50,
		},
		Logger:    zerolog.Nop(),
		Users:     env.users,
		Projects:  env.projects,
		Assets:    env.assets,
		Jobs:      env.jobs,
		Generated: env.generated,
		Formats:   env.formats,
		Platforms: env.platforms,
		Settings:  env.settings,
		Styles:    env.styles,
		Queue:     env.queue,
	}
	return env
}
