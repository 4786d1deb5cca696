package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/repository"
	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// ProgressHandler wires the progress tracking endpoints.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches progress routes to the router group.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.upsert)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ProgressHandler) list(c *fiber.Ctx) error {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	taskID, err := parseQueryUint(c, "task_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task_id")
	}
	sectionID, err := parseQueryUint(c, "section_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section_id")
	}

	filter := repository.ProgressFilter{
		StudentID: studentID,
		TaskID:    taskID,
		SectionID: sectionID,
	}

	records, err := h.service.List(c.Context(), userIDFromContext(c), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list progress")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list progress")
	}

	return utils.SendSuccess(c, "progress records", records)
}

func (h *ProgressHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	record, err := h.service.Get(c.Context(), userIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "progress record not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch progress record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch progress record")
	}

	return utils.SendSuccess(c, "progress record", record)
}

func (h *ProgressHandler) upsert(c *fiber.Ctx) error {
	var payload dto.ProgressUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Upsert(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrTaskNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record progress")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record progress")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "progress recorded", record)
}

func (h *ProgressHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ProgressUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Update(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgressNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "progress record not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update progress record")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update progress record")
		}
	}

	return utils.SendSuccess(c, "progress updated", record)
}

func (h *ProgressHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "progress record not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete progress record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete progress record")
	}

	return utils.SendSuccess(c, "progress deleted", fiber.Map{"id": id})
}
