package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// AttendanceHandler wires the attendance endpoints.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance routes to the router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("", h.sheet)
	router.Post("", h.mark)
	router.Post("/mark-all", h.markAll)
	router.Get("/sheet", h.sheet)
	router.Get("/students/:id/percentage", h.percentage)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Mark(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to mark attendance")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark attendance")
		}
	}

	return utils.SendSuccess(c, "attendance marked", record)
}

func (h *AttendanceHandler) markAll(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkAllRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	records, err := h.service.MarkAllPresent(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to mark all present")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark all present")
		}
	}

	return utils.SendSuccess(c, "attendance marked for roster", records)
}

func (h *AttendanceHandler) sheet(c *fiber.Ctx) error {
	sectionID, err := parseQueryUint(c, "section_id")
	if err != nil || sectionID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "section_id query required")
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "date query required")
	}

	sheet, err := h.service.Sheet(c.Context(), userIDFromContext(c), *sectionID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to build attendance sheet")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to build attendance sheet")
		}
	}

	return utils.SendSuccess(c, "attendance sheet", sheet)
}

func (h *AttendanceHandler) percentage(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	sectionID, err := parseQueryUint(c, "section_id")
	if err != nil || sectionID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "section_id query required")
	}

	summary, err := h.service.StudentPercentage(c.Context(), userIDFromContext(c), studentID, *sectionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute attendance percentage")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute attendance percentage")
		}
	}

	return utils.SendSuccess(c, "attendance percentage", summary)
}
