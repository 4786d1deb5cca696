package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// AnnouncementHandler wires the announcement endpoints.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register attaches announcement routes to the router group.
func (h *AnnouncementHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/pin", h.pin)
	router.Delete("/:id", h.delete)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	sectionID, err := parseQueryUint(c, "section_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section_id")
	}

	announcements, err := h.service.List(c.Context(), userIDFromContext(c), sectionID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}

	return utils.SendSuccess(c, "announcements", announcements)
}

func (h *AnnouncementHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	announcement, err := h.service.GetByID(c.Context(), userIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch announcement")
	}

	return utils.SendSuccess(c, "announcement", announcement)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	author := usernameFromContext(c)
	announcement, err := h.service.Create(c.Context(), userIDFromContext(c), author, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		case errors.Is(err, service.ErrAnnouncementEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, "announcement content is empty")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create announcement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create announcement")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created", announcement)
}

func (h *AnnouncementHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AnnouncementUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Update(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		case errors.Is(err, service.ErrAnnouncementEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, "announcement content is empty")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update announcement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update announcement")
		}
	}

	return utils.SendSuccess(c, "announcement updated", announcement)
}

func (h *AnnouncementHandler) pin(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AnnouncementPinRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Pin(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to pin announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to pin announcement")
	}

	return utils.SendSuccess(c, "announcement pinned", announcement)
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", fiber.Map{"id": id})
}
