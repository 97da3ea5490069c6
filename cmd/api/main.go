package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/config"
	"github.com/thealbion75/sport-community-api/internal/database"
	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/handler"
	"github.com/thealbion75/sport-community-api/internal/middleware"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/repository"
	"github.com/thealbion75/sport-community-api/internal/router"
	"github.com/thealbion75/sport-community-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.VolunteerOpportunity{},
		&models.ContentReport{},
		&models.ReviewLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSServerURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	notifier := service.NewNATSNotifier(natsConn, "review.decisions", logger)

	clubRepo := repository.NewClubRepository(db)
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewReviewLogRepository(db)
	clubStore := repository.NewReviewStore[models.Club](db, "name", "contact_email", "description")
	opportunityStore := repository.NewReviewStore[models.VolunteerOpportunity](db, "title", "description")
	reportStore := repository.NewReviewStore[models.ContentReport](db, "content_type", "reason")
	userStore := repository.NewReviewStore[models.User](db, "name", "email")

	clubEngine := service.NewReviewEngine("club", models.ApplicationStatuses, clubStore, logRepo, userRepo, notifier, redisClient, cfg.StatsCacheTTL, logger)
	opportunityEngine := service.NewReviewEngine("opportunity", models.ApplicationStatuses, opportunityStore, logRepo, userRepo, notifier, redisClient, cfg.StatsCacheTTL, logger)
	reportEngine := service.NewReviewEngine("report", models.ApplicationStatuses, reportStore, logRepo, userRepo, notifier, redisClient, cfg.StatsCacheTTL, logger)
	userEngine := service.NewReviewEngine("user", models.AccountStatuses, userStore, logRepo, userRepo, notifier, redisClient, cfg.StatsCacheTTL, logger)

	clubService := service.NewClubService(clubRepo, clubEngine, opportunityStore, opportunityEngine, validate, logger)
	moderationService := service.NewModerationService(reportStore, logRepo, validate, logger)

	deps := router.Dependencies{
		ClubHandler:             handler.NewClubHandler(clubService, logger),
		ReportHandler:           handler.NewReportHandler(moderationService, logger),
		AdminClubHandler:        handler.NewAdminReviewHandler(clubEngine, dto.NewClubResponse, nil, validate, logger),
		AdminOpportunityHandler: handler.NewAdminReviewHandler(opportunityEngine, dto.NewOpportunityResponse, map[string]string{"club_id": "club_id"}, validate, logger),
		AdminReportHandler:      handler.NewAdminReviewHandler(reportEngine, dto.NewReportResponse, nil, validate, logger),
		AdminUserHandler:        handler.NewAdminReviewHandler(userEngine, dto.NewUserResponse, nil, validate, logger),
		AdminAuditHandler:       handler.NewAdminAuditHandler(moderationService, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
