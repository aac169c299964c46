package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"repurpose-backend/internal/domain"
)

func adminRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Get("/admin/formats", app.AdminListFormats)
	r.Post("/admin/formats", app.AdminCreateFormat)
	r.Put("/admin/formats/{formatId}", app.AdminUpdateFormat)
	r.Delete("/admin/formats/{formatId}", app.AdminDeleteFormat)
	r.Get("/admin/platforms", app.AdminListPlatforms)
	r.Post("/admin/platforms", app.AdminCreatePlatform)
	r.Put("/admin/platforms/{platformId}", app.AdminUpdatePlatform)
	r.Delete("/admin/platforms/{platformId}", app.AdminDeletePlatform)
	r.Get("/admin/rules", app.AdminListRules)
	r.Get("/admin/rules/{ruleKey}", app.AdminGetRule)
	r.Put("/admin/rules/{ruleKey}", app.AdminSetRule)
	r.Get("/admin/text-style-sets", app.AdminListStyleSets)
	r.Post("/admin/text-style-sets", app.AdminCreateStyleSet)
	r.Put("/admin/text-style-sets/{styleSetId}", app.AdminUpdateStyleSet)
	r.Delete("/admin/text-style-sets/{styleSetId}", app.AdminDeleteStyleSet)
	return r
}

func TestAdminCreateFormatValidation(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/admin/formats", map[string]any{
		"name": "IG Square", "type": "repurposing", "width": 1080, "height": 1080,
	}, adminID)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created formatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = doJSON(t, router, http.MethodPost, "/admin/formats", map[string]any{
		"name": "bad", "type": "cropping", "width": 100, "height": 100,
	}, adminID)
	require.Equal(t, http.StatusBadRequest, rec.Code, "unknown format type is rejected")

	rec = doJSON(t, router, http.MethodPost, "/admin/formats", map[string]any{
		"name": "bad", "type": "resizing", "width": 0, "height": 100,
	}, adminID)
	require.Equal(t, http.StatusBadRequest, rec.Code, "dimensions must be positive")
}

func TestAdminFormatUpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	format := &domain.AssetFormat{Name: "Old", Type: domain.FormatTypeResizing, Width: 100, Height: 100, IsActive: true}
	require.NoError(t, env.formats.Create(context.Background(), format))

	rec := doJSON(t, router, http.MethodPut, "/admin/formats/"+format.ID.String(), map[string]any{
		"name": "New", "type": "resizing", "width": 200, "height": 200, "isActive": false,
	}, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := env.formats.items[format.ID]
	require.Equal(t, "New", updated.Name)
	require.False(t, updated.IsActive)

	rec = doJSON(t, router, http.MethodDelete, "/admin/formats/"+format.ID.String(), nil, adminID)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/admin/formats/"+format.ID.String(), nil, adminID)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRuleRoundTrip(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	rec := doJSON(t, router, http.MethodPut, "/admin/rules/"+domain.RuleKeyManualEditing, map[string]any{
		"ruleValue":   json.RawMessage(`{"enabled":false}`),
		"description": "lock edits during review",
	}, adminID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/rules/"+domain.RuleKeyManualEditing, nil, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	var rule ruleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	require.Equal(t, domain.RuleKeyManualEditing, rule.RuleKey)
	require.JSONEq(t, `{"enabled":false}`, string(rule.RuleValue))
}

func TestAdminGetRuleServesDefaults(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	rec := doJSON(t, router, http.MethodGet, "/admin/rules/"+domain.RuleKeyManualEditing, nil, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	var rule ruleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	require.JSONEq(t, `{"enabled":true}`, string(rule.RuleValue))

	rec = doJSON(t, router, http.MethodGet, "/admin/rules/"+domain.RuleKeyModerationLimits, nil, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	var limits domain.ModerationLimits
	require.NoError(t, json.Unmarshal(rule.RuleValue, &limits))
	require.Equal(t, 20, limits.MaxFiles)
	require.False(t, limits.NsfwAlertsActive)

	rec = doJSON(t, router, http.MethodGet, "/admin/rules/no_such_rule", nil, adminID)
	require.Equal(t, http.StatusNotFound, rec.Code, "only well-known keys have defaults")
}

func TestAdminListFormatsIncludesInactive(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	require.NoError(t, env.formats.Create(context.Background(), &domain.AssetFormat{
		Name: "Live", Type: domain.FormatTypeResizing, Width: 100, Height: 100, IsActive: true,
	}))
	require.NoError(t, env.formats.Create(context.Background(), &domain.AssetFormat{
		Name: "Retired", Type: domain.FormatTypeResizing, Width: 50, Height: 50, IsActive: false,
	}))

	rec := doJSON(t, router, http.MethodGet, "/admin/formats", nil, adminID)
	require.Equal(t, http.StatusOK, rec.Code)

	var formats []formatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formats))
	require.Len(t, formats, 2)
	active := map[string]bool{}
	for _, f := range formats {
		active[f.Name] = f.IsActive
	}
	require.True(t, active["Live"])
	require.False(t, active["Retired"])
}

func TestAdminUpdatePlatform(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	platform := &domain.RepurposingPlatform{Name: "Instagram"}
	require.NoError(t, env.platforms.Create(context.Background(), platform))

	rec := doJSON(t, router, http.MethodPut, "/admin/platforms/"+platform.ID.String(), map[string]any{
		"name": "Instagram Reels", "isActive": false,
	}, adminID)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := env.platforms.items[platform.ID]
	require.Equal(t, "Instagram Reels", updated.Name)
	require.False(t, updated.IsActive)

	rec = doJSON(t, router, http.MethodPut, "/admin/platforms/"+uuid.NewString(), map[string]any{
		"name": "Ghost",
	}, adminID)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminStyleSetCRUD(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/admin/text-style-sets", map[string]any{
		"name":   "Bold Promo",
		"styles": json.RawMessage(`{"headline":{"font":"Inter","weight":700}}`),
	}, adminID)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created styleSetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.IsActive)

	rec = doJSON(t, router, http.MethodPut, "/admin/text-style-sets/"+created.ID.String(), map[string]any{
		"name":     "Bold Promo v2",
		"styles":   json.RawMessage(`{"headline":{"font":"Inter","weight":800}}`),
		"isActive": false,
	}, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Bold Promo v2", env.styles.items[created.ID].Name)

	rec = doJSON(t, router, http.MethodDelete, "/admin/text-style-sets/"+created.ID.String(), nil, adminID)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, env.styles.items)
}

func TestAdminCreatePlatform(t *testing.T) {
	env := newTestEnv()
	router := adminRouter(env.app)
	adminID := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/admin/platforms", map[string]any{"name": "TikTok"}, adminID)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/platforms", nil, adminID)
	require.Equal(t, http.StatusOK, rec.Code)
	var platforms []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &platforms))
	require.Len(t, platforms, 1)
	require.Equal(t, "TikTok", platforms[0]["name"])
}
