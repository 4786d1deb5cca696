package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ErrSectionNotFound indicates the section does not exist or belongs to
// another teacher.
var ErrSectionNotFound = errors.New("section not found")

// SectionService manages class sections.
type SectionService interface {
	List(ctx context.Context, userID uint) ([]dto.SectionResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.SectionResponse, error)
	Create(ctx context.Context, userID uint, payload dto.SectionCreateRequest) (dto.SectionResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.SectionUpdateRequest) (dto.SectionResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type sectionService struct {
	repo      repository.SectionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(repo repository.SectionRepository, validate *validator.Validate, logger zerolog.Logger) SectionService {
	return &sectionService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "section_service").Logger(),
	}
}

func (s *sectionService) List(ctx context.Context, userID uint) ([]dto.SectionResponse, error) {
	sections, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewSectionResponseSlice(sections), nil
}

func (s *sectionService) Get(ctx context.Context, userID, id uint) (dto.SectionResponse, error) {
	section, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SectionResponse{}, ErrSectionNotFound
		}
		return dto.SectionResponse{}, err
	}

	return dto.NewSectionResponse(section), nil
}

func (s *sectionService) Create(ctx context.Context, userID uint, payload dto.SectionCreateRequest) (dto.SectionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SectionResponse{}, err
	}

	section := models.Section{
		UserID:   userID,
		Name:     payload.Name,
		Code:     payload.Code,
		Subject:  payload.Subject,
		Schedule: payload.Schedule,
		Room:     payload.Room,
	}

	if err := s.repo.Create(ctx, &section); err != nil {
		return dto.SectionResponse{}, err
	}

	s.logger.Info().Uint("section_id", section.ID).Msg("section created")

	return dto.NewSectionResponse(section), nil
}

func (s *sectionService) Update(ctx context.Context, userID, id uint, payload dto.SectionUpdateRequest) (dto.SectionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SectionResponse{}, err
	}

	section, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SectionResponse{}, ErrSectionNotFound
		}
		return dto.SectionResponse{}, err
	}

	if payload.Name != nil {
		section.Name = *payload.Name
	}
	if payload.Code != nil {
		section.Code = *payload.Code
	}
	if payload.Subject != nil {
		section.Subject = *payload.Subject
	}
	if payload.Schedule != nil {
		section.Schedule = *payload.Schedule
	}
	if payload.Room != nil {
		section.Room = *payload.Room
	}

	if err := s.repo.Update(ctx, &section); err != nil {
		return dto.SectionResponse{}, err
	}

	return dto.NewSectionResponse(section), nil
}

func (s *sectionService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	s.logger.Info().Uint("section_id", id).Msg("section deleted with dependents")

	return nil
}
