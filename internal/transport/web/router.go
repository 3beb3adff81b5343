package web

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/meal-ticket/internal"
	"github.com/frahmantamala/meal-ticket/internal/transport/middleware"
	"github.com/frahmantamala/meal-ticket/internal/transport/swagger"
)

// RegisterAllRoutes wires the admin surface: the roster page behind the
// basic-auth guard, the report/health JSON API, and the API docs.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, adminCfg internal.AdminConfig, adminHandler *AdminHandler, reportHandler *ReportHandler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	guard := middleware.BasicAuth(adminCfg.Username, adminCfg.Password, logger)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(guard)
			pr.Get("/reports/daily", reportHandler.Daily)
			pr.Get("/reports/monthly", reportHandler.Monthly)
		})
	})

	// Roster pages; every guarded route answers 401 with a challenge on
	// bad credentials
	router.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/", adminHandler.Index)
		r.Post("/add", adminHandler.AddEmployee)
		r.Post("/delete/{id}", adminHandler.DeleteEmployee)
	})
}
