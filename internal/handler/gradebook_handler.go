package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// GradebookHandler wires the grade entry and gradebook endpoints.
type GradebookHandler struct {
	service service.GradebookService
	logger  zerolog.Logger
}

// NewGradebookHandler constructs the handler.
func NewGradebookHandler(service service.GradebookService, logger zerolog.Logger) *GradebookHandler {
	return &GradebookHandler{
		service: service,
		logger:  logger.With().Str("component", "gradebook_handler").Logger(),
	}
}

// Register attaches gradebook routes to the router group.
func (h *GradebookHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Put("", h.upsert)
	router.Get("/students/:id/total", h.studentTotal)
}

// list serves two shapes: ?student_id= returns that student's grades,
// ?section_id= returns the full gradebook matrix for the section.
func (h *GradebookHandler) list(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	sectionID, err := parseQueryUint(c, "section_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section_id")
	}

	switch {
	case studentID != nil:
		grades, err := h.service.ListByStudent(c.Context(), userIDFromContext(c), *studentID)
		if err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "student not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to list grades")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to list grades")
		}
		return utils.SendSuccess(c, "grades", grades)
	case sectionID != nil:
		matrix, err := h.service.Matrix(c.Context(), userIDFromContext(c), *sectionID)
		if err != nil {
			if errors.Is(err, service.ErrSectionNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "section not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to build gradebook")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to build gradebook")
		}
		return utils.SendSuccess(c, "gradebook", matrix)
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "student_id or section_id query required")
	}
}

func (h *GradebookHandler) upsert(c *fiber.Ctx) error {
	var payload dto.GradeUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	grade, err := h.service.UpsertGrade(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrTaskNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		case errors.Is(err, service.ErrInvalidScore):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid score")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record grade")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record grade")
		}
	}

	return utils.SendSuccess(c, "grade recorded", grade)
}

func (h *GradebookHandler) studentTotal(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	total, err := h.service.StudentTotal(c.Context(), userIDFromContext(c), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute student total")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute student total")
	}

	return utils.SendSuccess(c, "student total", total)
}
