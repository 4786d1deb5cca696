package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// ReportHandler wires the aggregated reporting endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report routes to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/analytics", h.analytics)
	router.Get("/students", h.students)
}

func (h *ReportHandler) dashboard(c *fiber.Ctx) error {
	report, cached, err := h.service.Dashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard report")
	}

	setCacheHeader(c, cached)
	return utils.SendSuccess(c, "dashboard report", report)
}

func (h *ReportHandler) analytics(c *fiber.Ctx) error {
	report, cached, err := h.service.Analytics(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build analytics report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build analytics report")
	}

	setCacheHeader(c, cached)
	return utils.SendSuccess(c, "analytics report", report)
}

func (h *ReportHandler) students(c *fiber.Ctx) error {
	report, cached, err := h.service.StudentPerformance(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build student performance report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build student performance report")
	}

	setCacheHeader(c, cached)
	return utils.SendSuccess(c, "student performance report", report)
}

func setCacheHeader(c *fiber.Ctx, cached bool) {
	if cached {
		c.Set("X-Cache-Hit", "true")
		return
	}
	c.Set("X-Cache-Hit", "false")
}
