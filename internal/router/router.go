package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thealbion75/sport-community-api/internal/config"
	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/handler"
	"github.com/thealbion75/sport-community-api/internal/middleware"
	"github.com/thealbion75/sport-community-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ClubHandler             *handler.ClubHandler
	ReportHandler           *handler.ReportHandler
	AdminClubHandler        *handler.AdminReviewHandler[models.Club, dto.ClubResponse]
	AdminOpportunityHandler *handler.AdminReviewHandler[models.VolunteerOpportunity, dto.OpportunityResponse]
	AdminReportHandler      *handler.AdminReviewHandler[models.ContentReport, dto.ReportResponse]
	AdminUserHandler        *handler.AdminReviewHandler[models.User, dto.UserResponse]
	AdminAuditHandler       *handler.AdminAuditHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public surface
	if deps.ClubHandler != nil {
		deps.ClubHandler.Register(api.Group("/clubs"), api.Group("/opportunities"))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(api.Group("/reports"))
	}

	// Admin review surface
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	if deps.AdminClubHandler != nil {
		deps.AdminClubHandler.Register(admin.Group("/clubs"))
	}
	if deps.AdminOpportunityHandler != nil {
		deps.AdminOpportunityHandler.Register(admin.Group("/opportunities"))
	}
	if deps.AdminReportHandler != nil {
		deps.AdminReportHandler.Register(admin.Group("/reports"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminAuditHandler != nil {
		deps.AdminAuditHandler.Register(admin.Group("/audit"))
	}
}
