package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/am3lue/ProjectManagementSystem/internal/analytics"
	"github.com/am3lue/ProjectManagementSystem/internal/component"
	"github.com/am3lue/ProjectManagementSystem/internal/identity"
	"github.com/am3lue/ProjectManagementSystem/internal/profile"
	"github.com/am3lue/ProjectManagementSystem/internal/project"
	"github.com/am3lue/ProjectManagementSystem/internal/settings"
	"github.com/am3lue/ProjectManagementSystem/internal/transport/middleware"
	"github.com/am3lue/ProjectManagementSystem/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RouterDeps collects everything RegisterAllRoutes needs to wire the API
// and the guarded static pages.
type RouterDeps struct {
	DB       *sql.DB
	Sessions middleware.SessionChecker

	AuthHandler      *identity.Handler
	ProfileHandler   *profile.Handler
	ComponentHandler *component.Handler
	ProjectHandler   *project.Handler
	AnalyticsHandler *analytics.Handler
	SettingsHandler  *settings.Handler

	StaticDir string
	Logger    *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes stay public; logout is unconditional
		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/signup", deps.AuthHandler.SignUp)
				sr.Post("/signin", deps.AuthHandler.SignIn)
				sr.Post("/forgot-password", deps.AuthHandler.ForgotPassword)
				sr.Post("/logout", deps.AuthHandler.Logout)
			})
			r.Get("/session", deps.AuthHandler.Session)
		}

		// Protected routes that require an active session
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireSession(deps.Sessions))

			if deps.ProfileHandler != nil {
				pr.Put("/profile", deps.ProfileHandler.UpdateProfile)
				pr.Post("/profile/avatar", deps.ProfileHandler.ChangeAvatar)
			}

			if deps.ComponentHandler != nil {
				pr.Route("/components", func(cr chi.Router) {
					cr.Get("/", deps.ComponentHandler.List)
					cr.Post("/", deps.ComponentHandler.Create)
					cr.Get("/{id}", deps.ComponentHandler.Get)
					cr.Put("/{id}", deps.ComponentHandler.Update)
					cr.Delete("/{id}", deps.ComponentHandler.Delete)
				})
			}

			if deps.ProjectHandler != nil {
				pr.Route("/projects", func(jr chi.Router) {
					jr.Get("/", deps.ProjectHandler.List)
					jr.Post("/", deps.ProjectHandler.Create)
					jr.Get("/{id}", deps.ProjectHandler.Get)
					jr.Put("/{id}", deps.ProjectHandler.Update)
					jr.Delete("/{id}", deps.ProjectHandler.Delete)
				})
			}

			if deps.AnalyticsHandler != nil {
				pr.Get("/analytics/summary", deps.AnalyticsHandler.Summary)
			}

			if deps.SettingsHandler != nil {
				pr.Get("/settings", deps.SettingsHandler.Get)
				pr.Put("/settings", deps.SettingsHandler.Save)
			}
		})
	})

	// Static pages behind the page guard; API routes above take precedence
	if deps.StaticDir != "" {
		pages := middleware.PageGuard(deps.Sessions)(http.FileServer(http.Dir(deps.StaticDir)))
		router.Handle("/*", pages)
	}
}
