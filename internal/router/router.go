package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/classdesk-api/internal/config"
	"github.com/noah-isme/classdesk-api/internal/handler"
	"github.com/noah-isme/classdesk-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	SectionHandler      *handler.SectionHandler
	StudentHandler      *handler.StudentHandler
	TaskHandler         *handler.TaskHandler
	ProgressHandler     *handler.ProgressHandler
	GradebookHandler    *handler.GradebookHandler
	AttendanceHandler   *handler.AttendanceHandler
	SubmissionHandler   *handler.SubmissionHandler
	AnnouncementHandler *handler.AnnouncementHandler
	NotificationHandler *handler.NotificationHandler
	ReportHandler       *handler.ReportHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.SectionHandler != nil {
		deps.SectionHandler.Register(api.Group("/sections", jwtMiddleware))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", jwtMiddleware))
	}
	if deps.TaskHandler != nil {
		deps.TaskHandler.Register(api.Group("/tasks", jwtMiddleware))
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(api.Group("/progress", jwtMiddleware))
	}
	if deps.GradebookHandler != nil {
		deps.GradebookHandler.Register(api.Group("/grades", jwtMiddleware))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwtMiddleware))
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware))
	}
	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements", jwtMiddleware))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(api.Group("/reports", jwtMiddleware))
	}
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed", jwtMiddleware))
	}
}
