package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"repurpose-backend/internal/http/handlers"
	"repurpose-backend/internal/middleware"
)

// NewRouter wires every route of the service. Everything under /api/v1
// requires a bearer token; the admin subtree additionally requires the
// admin role.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(app.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Config.JWTSecret))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", app.ListProjects)
			r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
				Post("/upload", app.UploadProject)
			r.Get("/{projectId}/status", app.ProjectStatus)
			r.Get("/{projectId}/preview", app.ProjectPreview)
		})

		r.Route("/generate", func(r chi.Router) {
			r.Post("/", app.Generate)
			r.Get("/{jobId}/status", app.GenerationStatus)
			r.Get("/{jobId}/results", app.GenerationResults)
		})

		r.Route("/generated-assets", func(r chi.Router) {
			r.Get("/{assetId}", app.GetGeneratedAsset)
			r.Put("/{assetId}", app.UpdateGeneratedAsset)
		})

		r.Post("/download", app.DownloadAssets)
		r.Get("/formats", app.ListFormats)
		r.Get("/me", app.Me)
		r.Put("/me/preferences", app.UpdateMyPreferences)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/formats", func(r chi.Router) {
				r.Get("/", app.AdminListFormats)
				r.Post("/", app.AdminCreateFormat)
				r.Put("/{formatId}", app.AdminUpdateFormat)
				r.Delete("/{formatId}", app.AdminDeleteFormat)
			})

			r.Route("/platforms", func(r chi.Router) {
				r.Get("/", app.AdminListPlatforms)
				r.Post("/", app.AdminCreatePlatform)
				r.Put("/{platformId}", app.AdminUpdatePlatform)
				r.Delete("/{platformId}", app.AdminDeletePlatform)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Get("/", app.AdminListRules)
				r.Get("/{ruleKey}", app.AdminGetRule)
				r.Put("/{ruleKey}", app.AdminSetRule)
			})

			r.Route("/text-style-sets", func(r chi.Router) {
				r.Get("/", app.AdminListStyleSets)
				r.Post("/", app.AdminCreateStyleSet)
				r.Put("/{styleSetId}", app.AdminUpdateStyleSet)
				r.Delete("/{styleSetId}", app.AdminDeleteStyleSet)
			})
		})
	})

	return r
}
