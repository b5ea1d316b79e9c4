package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"realtyapi/internal/config"
	"realtyapi/internal/http/middleware"
	"realtyapi/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Dashboard     service.DashboardService
	Documents     service.DocumentService
	Notifications service.NotificationService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; identity comes from middleware.Auth.
func RegisterRoutes(app *fiber.App, db *sql.DB, gatherer prometheus.Gatherer, auth config.AuthConfig, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", middleware.Auth(auth))
	api.Get("/dashboard/kpis", GetDashboardKPIs(svcs.Dashboard))
	api.Get("/dashboard/sales-chart", GetSalesChart(svcs.Dashboard))
	api.Get("/notifications", ListNotifications(svcs.Notifications))
	api.Get("/documents", ListDocuments(svcs.Documents))
	api.Post("/documents", UploadDocument(svcs.Documents))
	api.Get("/documents/:id", GetDocument(svcs.Documents))
	api.Get("/documents/:id/download", DownloadDocument(svcs.Documents))
	api.Delete("/documents/:id", DeleteDocument(svcs.Documents))

	internal := app.Group("/internal", middleware.InternalToken(auth.InternalToken))
	internal.Patch("/documents/:id/verification", UpdateVerificationStatus(svcs.Documents))
}
