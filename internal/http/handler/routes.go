package handler

import (
	"github.com/gofiber/fiber/v2"

	"applicantpool/internal/service"
)

// RegisterRoutes attaches the API routes to app.
func RegisterRoutes(app *fiber.App, db Pinger, ingest service.IngestService, search service.SearchService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", Upload(ingest))
	app.Post("/search", Search(search))
	app.Get("/stats", Stats(search))
	app.Get("/positions", Positions(search))
}
