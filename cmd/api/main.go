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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/config"
	"github.com/noah-isme/classdesk-api/internal/database"
	"github.com/noah-isme/classdesk-api/internal/handler"
	"github.com/noah-isme/classdesk-api/internal/middleware"
	"github.com/noah-isme/classdesk-api/internal/observability"
	"github.com/noah-isme/classdesk-api/internal/repository"
	"github.com/noah-isme/classdesk-api/internal/router"
	"github.com/noah-isme/classdesk-api/internal/service"
	cloud "github.com/noah-isme/classdesk-api/pkg/cloudinary"
)

const notificationChannelBase = "classdesk"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	observability.RegisterMetrics()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
	}

	// Submissions refuse uploads when no storage backend is configured.
	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	appCtx, stopBroker := context.WithCancel(context.Background())
	defer stopBroker()

	notificationService := service.NewNotificationService(notificationRepo, redisClient, notificationChannelBase, natsConn, validate, logger)
	notificationService.Start(appCtx)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	sectionService := service.NewSectionService(sectionRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, sectionRepo, validate, logger)
	taskService := service.NewTaskService(taskRepo, sectionRepo, notificationService, validate, logger)
	progressService := service.NewProgressService(progressRepo, studentRepo, taskRepo, validate, logger)
	gradebookService := service.NewGradebookService(gradeRepo, taskRepo, studentRepo, notificationService, validate, cfg.StrictScores, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, sectionRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, studentRepo, taskRepo, gradebookService, notificationService, storage, cfg.UploadMaxSizeMB, validate, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, sectionRepo, notificationService, validate, logger)
	reportService := service.NewReportService(sectionRepo, studentRepo, taskRepo, progressRepo, gradeRepo, redisClient, cfg.ReportCacheTTL, logger)
	seedService := service.NewSeedService(sectionRepo, studentRepo, taskRepo, progressRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		SectionHandler:      handler.NewSectionHandler(sectionService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		TaskHandler:         handler.NewTaskHandler(taskService, logger),
		ProgressHandler:     handler.NewProgressHandler(progressService, logger),
		GradebookHandler:    handler.NewGradebookHandler(gradebookService, logger),
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(submissionService, logger),
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, 30*time.Second),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopBroker)
}

func waitForShutdown(app *fiber.App, stopBroker context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	stopBroker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
