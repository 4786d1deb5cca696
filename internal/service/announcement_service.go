package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

// ErrAnnouncementNotFound indicates the announcement does not exist or
// belongs to another user.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// ErrAnnouncementEmpty indicates the content vanished after sanitization.
var ErrAnnouncementEmpty = errors.New("announcement content empty after sanitization")

// AnnouncementService owns section announcements and their pin ordering.
type AnnouncementService interface {
	Create(ctx context.Context, userID uint, author string, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error)
	List(ctx context.Context, userID uint, sectionID *uint) ([]dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, userID, id uint) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error)
	Pin(ctx context.Context, userID, id uint, payload dto.AnnouncementPinRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	sections  repository.SectionRepository
	notifier  NotificationService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAnnouncementService constructs the announcement service. notifier may
// be nil.
func NewAnnouncementService(repo repository.AnnouncementRepository, sections repository.SectionRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:      repo,
		sections:  sections,
		notifier:  notifier,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "announcement_service").Logger(),
	}
}

func (s *announcementService) Create(ctx context.Context, userID uint, author string, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if _, err := s.sections.GetByID(ctx, userID, payload.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrSectionNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.AnnouncementResponse{}, ErrAnnouncementEmpty
	}

	announcement := models.Announcement{
		UserID:    userID,
		SectionID: payload.SectionID,
		Title:     strings.TrimSpace(payload.Title),
		Content:   content,
		CreatedBy: author,
		IsPinned:  payload.IsPinned,
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if s.notifier != nil {
		_, _ = s.notifier.Publish(ctx, dto.NotificationCreateRequest{
			UserID:  userID,
			Type:    models.NotificationTypeAnnouncement,
			Message: fmt.Sprintf("Announcement posted: %s", announcement.Title),
		})
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) List(ctx context.Context, userID uint, sectionID *uint) ([]dto.AnnouncementResponse, error) {
	announcements, err := s.repo.List(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}

	return dto.NewAnnouncementResponseSlice(announcements), nil
}

func (s *announcementService) GetByID(ctx context.Context, userID, id uint) (dto.AnnouncementResponse, error) {
	announcement, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Update(ctx context.Context, userID, id uint, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	announcement, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	if payload.Title != nil {
		announcement.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Content != nil {
		content := strings.TrimSpace(s.sanitizer.Sanitize(*payload.Content))
		if content == "" {
			return dto.AnnouncementResponse{}, ErrAnnouncementEmpty
		}
		announcement.Content = content
	}
	if payload.IsPinned != nil {
		announcement.IsPinned = *payload.IsPinned
	}

	if err := s.repo.Update(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Pin(ctx context.Context, userID, id uint, payload dto.AnnouncementPinRequest) (dto.AnnouncementResponse, error) {
	announcement, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	announcement.IsPinned = payload.IsPinned
	if err := s.repo.Update(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	return nil
}
