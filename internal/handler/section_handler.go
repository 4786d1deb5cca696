package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/service"
	"github.com/noah-isme/classdesk-api/internal/utils"
)

// SectionHandler wires the class section endpoints.
type SectionHandler struct {
	service service.SectionService
	logger  zerolog.Logger
}

// NewSectionHandler constructs the handler.
func NewSectionHandler(service service.SectionService, logger zerolog.Logger) *SectionHandler {
	return &SectionHandler{
		service: service,
		logger:  logger.With().Str("component", "section_handler").Logger(),
	}
}

// Register attaches section routes to the router group.
func (h *SectionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *SectionHandler) list(c *fiber.Ctx) error {
	sections, err := h.service.List(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list sections")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list sections")
	}

	return utils.SendSuccess(c, "sections", sections)
}

func (h *SectionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	section, err := h.service.Get(c.Context(), userIDFromContext(c), id)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch section")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch section")
	}

	return utils.SendSuccess(c, "section", section)
}

func (h *SectionHandler) create(c *fiber.Ctx) error {
	var payload dto.SectionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	section, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create section")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create section")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "section created", section)
}

func (h *SectionHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.SectionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	section, err := h.service.Update(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSectionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update section")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update section")
		}
	}

	return utils.SendSuccess(c, "section updated", section)
}

func (h *SectionHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "section not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete section")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete section")
	}

	return utils.SendSuccess(c, "section deleted", fiber.Map{"id": id})
}
